package util

// KeyID identifies a public key by the Hash160 of its serialization.
type KeyID [Hash160Size]byte

// ScriptID identifies a redeem script by its Hash160.
type ScriptID [Hash160Size]byte

// NewKeyID returns the KeyID of a serialized public key.
func NewKeyID(serializedPubKey []byte) KeyID {
	var id KeyID
	copy(id[:], Hash160(serializedPubKey))
	return id
}

// NewScriptID returns the ScriptID of a redeem script.
func NewScriptID(script []byte) ScriptID {
	var id ScriptID
	copy(id[:], Hash160(script))
	return id
}

// DestinationKind enumerates the kinds of payment destination an output can
// be resolved to.
type DestinationKind int

// The closed set of destination kinds.
const (
	DestinationNone DestinationKind = iota
	DestinationKeyHash
	DestinationScriptHash
)

var destinationKindStrings = map[DestinationKind]string{
	DestinationNone:       "none",
	DestinationKeyHash:    "keyhash",
	DestinationScriptHash: "scripthash",
}

// String returns the DestinationKind in human-readable form.
func (kind DestinationKind) String() string {
	s, ok := destinationKindStrings[kind]
	if !ok {
		return "unknown"
	}
	return s
}

// Destination is a payment destination: a key hash, a script hash, or
// nothing. Hash is meaningful only when Kind is not DestinationNone.
type Destination struct {
	Kind DestinationKind
	Hash [Hash160Size]byte
}

// NoDestination is the destination of outputs that pay to neither a key
// hash nor a script hash.
var NoDestination = Destination{Kind: DestinationNone}

// KeyHashDestination returns a key hash destination for id.
func KeyHashDestination(id KeyID) Destination {
	return Destination{Kind: DestinationKeyHash, Hash: id}
}

// ScriptHashDestination returns a script hash destination for id.
func ScriptHashDestination(id ScriptID) Destination {
	return Destination{Kind: DestinationScriptHash, Hash: id}
}

// KeyID returns the key identity of a key hash destination.
func (d Destination) KeyID() (KeyID, bool) {
	if d.Kind != DestinationKeyHash {
		return KeyID{}, false
	}
	return KeyID(d.Hash), true
}

// ScriptID returns the script identity of a script hash destination.
func (d Destination) ScriptID() (ScriptID, bool) {
	if d.Kind != DestinationScriptHash {
		return ScriptID{}, false
	}
	return ScriptID(d.Hash), true
}
