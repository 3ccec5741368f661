// Package integrity signs and verifies the chain hashes of journaled events.
//
// Signing keys are derived per game from a root HMAC key, so a leaked game key
// cannot forge events in another game. A nil Keyring means events are stored
// unsigned and verification checks the hash chain only.
package integrity
