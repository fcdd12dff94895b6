// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// These are the constants specified for maximums in individual scripts.
const (
	MaxScriptSize         = 10000 // Max bytes allowed in a script.
	MaxScriptElementSize  = 520   // Max bytes pushable to the stack.
	maxDisasmNumberLength = 4     // Pushes up to this size disassemble as numbers.
)

// ErrMalformedPush is returned when a push opcode claims more data than the
// script holds.
var ErrMalformedPush = errors.New("malformed push")

// parsedOpcode represents an opcode that has been parsed and includes any
// potential data associated with it.
type parsedOpcode struct {
	opcode byte
	data   []byte
}

// isPush returns whether the opcode pushes data rather than operating on it.
func (pop *parsedOpcode) isPush() bool {
	return pop.opcode <= OP_PUSHDATA4
}

// scriptTokenizer walks a script one opcode at a time.
type scriptTokenizer struct {
	script []byte
	offset int
	op     parsedOpcode
	err    error
}

// makeScriptTokenizer returns a tokenizer positioned before the first opcode
// of script.
func makeScriptTokenizer(script []byte) scriptTokenizer {
	return scriptTokenizer{script: script}
}

// Done returns true when either all opcodes have been exhausted or a parse
// failure was encountered and therefore the state has an associated error.
func (t *scriptTokenizer) Done() bool {
	return t.err != nil || t.offset >= len(t.script)
}

// Err returns any errors currently associated with the tokenizer. This will
// only be non-nil in the case a parsing error was encountered.
func (t *scriptTokenizer) Err() error {
	return t.err
}

// Op returns the most recently parsed opcode.
func (t *scriptTokenizer) Op() parsedOpcode {
	return t.op
}

// Next attempts to parse the next opcode and returns whether or not it was
// successful. It will not be successful if invoked when already at the end
// of the script or a parse failure is encountered.
func (t *scriptTokenizer) Next() bool {
	if t.Done() {
		return false
	}

	op := t.script[t.offset]
	t.offset++

	var dataLen int
	switch {
	case op < OP_PUSHDATA1:
		dataLen = int(op)

	case op == OP_PUSHDATA1:
		if len(t.script)-t.offset < 1 {
			return t.fail(op, "OP_PUSHDATA1 without length")
		}
		dataLen = int(t.script[t.offset])
		t.offset++

	case op == OP_PUSHDATA2:
		if len(t.script)-t.offset < 2 {
			return t.fail(op, "OP_PUSHDATA2 without length")
		}
		dataLen = int(binary.LittleEndian.Uint16(t.script[t.offset:]))
		t.offset += 2

	case op == OP_PUSHDATA4:
		if len(t.script)-t.offset < 4 {
			return t.fail(op, "OP_PUSHDATA4 without length")
		}
		dataLen = int(binary.LittleEndian.Uint32(t.script[t.offset:]))
		t.offset += 4

	default:
		t.op = parsedOpcode{opcode: op}
		return true
	}

	if dataLen < 0 || len(t.script)-t.offset < dataLen {
		return t.fail(op, "push of "+strconv.Itoa(dataLen)+" bytes exceeds script")
	}
	t.op = parsedOpcode{opcode: op, data: t.script[t.offset : t.offset+dataLen]}
	t.offset += dataLen
	return true
}

func (t *scriptTokenizer) fail(op byte, desc string) bool {
	t.err = errors.Wrapf(ErrMalformedPush, "opcode 0x%02x at offset %d: %s", op, t.offset-1, desc)
	return false
}

// parseScript parses the whole script, failing on the first malformed push.
func parseScript(script []byte) ([]parsedOpcode, error) {
	var pops []parsedOpcode
	tokenizer := makeScriptTokenizer(script)
	for tokenizer.Next() {
		pops = append(pops, tokenizer.Op())
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}
	return pops, nil
}

// DisasmString formats a disassembled script for one line printing. Pushes
// of up to four bytes are shown as decimal script numbers and longer pushes
// as hex. Small integer opcodes are shown as their value and every other
// opcode by name. When the script fails to parse, the output is the
// disassembly up to the failure followed by "[error]".
func DisasmString(script []byte) string {
	var disbuf strings.Builder
	tokenizer := makeScriptTokenizer(script)
	for !tokenizer.Done() {
		if disbuf.Len() > 0 {
			disbuf.WriteByte(' ')
		}
		if !tokenizer.Next() {
			disbuf.WriteString("[error]")
			break
		}
		disasmOpcode(&disbuf, tokenizer.Op())
	}
	return disbuf.String()
}

func disasmOpcode(buf *strings.Builder, pop parsedOpcode) {
	if !pop.isPush() {
		buf.WriteString(opcodeName(pop.opcode))
		return
	}
	if len(pop.data) <= maxDisasmNumberLength {
		buf.WriteString(strconv.FormatInt(decodeScriptNum(pop.data), 10))
		return
	}
	buf.WriteString(hex.EncodeToString(pop.data))
}

// IsPushOnly returns true if the script only pushes data or small integers,
// false otherwise. A script that fails to parse is not push only.
func IsPushOnly(script []byte) bool {
	tokenizer := makeScriptTokenizer(script)
	for tokenizer.Next() {
		if tokenizer.Op().opcode > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// IsUnspendable returns whether the passed public key script is unspendable,
// or guaranteed to fail at execution. This allows outputs to be pruned
// instantly when entering the UTXO set.
func IsUnspendable(pkScript []byte) bool {
	return (len(pkScript) > 0 && pkScript[0] == OP_RETURN) || len(pkScript) > MaxScriptSize
}

// IsPayToScriptHash returns true if the script is in the standard
// pay-to-script-hash (P2SH) format, false otherwise.
func IsPayToScriptHash(script []byte) bool {
	// A pay-to-script-hash script is of the form:
	//  OP_HASH160 <20-byte scripthash> OP_EQUAL
	return len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL
}

// isPubKeyHashScript returns whether the script is in the standard
// pay-to-pubkey-hash (P2PKH) format.
func isPubKeyHashScript(script []byte) bool {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	return len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG
}

// extractPubKey returns the public key of a pay-to-pubkey script, or nil.
// Only the size and prefix of the key are checked.
func extractPubKey(script []byte) []byte {
	// A pay-to-compressed-pubkey script is of the form:
	//  OP_DATA_33 <33-byte compressed pubkey> OP_CHECKSIG
	if len(script) == 35 && script[0] == OP_DATA_33 && script[34] == OP_CHECKSIG &&
		(script[1] == 0x02 || script[1] == 0x03) {

		return script[1:34]
	}

	// A pay-to-uncompressed-pubkey script is of the form:
	//  OP_DATA_65 <65-byte uncompressed pubkey> OP_CHECKSIG
	if len(script) == 67 && script[0] == OP_DATA_65 && script[66] == OP_CHECKSIG &&
		(script[1] == 0x04 || script[1] == 0x06 || script[1] == 0x07) {

		return script[1:66]
	}

	return nil
}
