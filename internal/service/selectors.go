package service

import (
	"golang.org/x/crypto/sha3"
)

// Signatures binds every public operation to its stable external function
// signature. Dispatch layers integrating this engine address operations by
// the 4-byte selector of the signature, so these strings must never change.
var Signatures = map[string]string{
	"registerUser":                 "registerUser(bytes)",
	"createNote":                   "createNote(string,string)",
	"getNote":                      "getNote(uint256)",
	"updateNote":                   "updateNote(uint256,string,string)",
	"deleteNote":                   "deleteNote(uint256)",
	"getNoteCount":                 "getNoteCount()",
	"getNotesList":                 "getNotesList()",
	"updateEncryptionKey":          "updateEncryptionKey(bytes)",
	"encryptNote":                  "encryptNote(string)",
	"decryptNote":                  "decryptNote(bytes)",
	"getEncryptionContractAddress": "getEncryptionContractAddress()",
}

// Selector returns the 4-byte dispatch selector of a function signature:
// the first four bytes of the legacy Keccak-256 hash of the signature
// string.
func Selector(signature string) [4]byte {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(signature))

	var selector [4]byte
	copy(selector[:], hash.Sum(nil)[:4])
	return selector
}

// Selectors returns the operation-name to selector table for every entry of
// [Signatures].
func Selectors() map[string][4]byte {
	out := make(map[string][4]byte, len(Signatures))
	for name, signature := range Signatures {
		out[name] = Selector(signature)
	}
	return out
}
