package tpos

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/tposnet/tposd/chaincfg"
	"github.com/tposnet/tposd/wire"
)

const (
	exportLabel       = "TPOSOWNERINFO"
	exportHeaderWidth = 40
	exportLabelOffset = 5
)

// ErrMalformedExportBlock is returned when an export block does not carry
// a payload.
var ErrMalformedExportBlock = errors.New("malformed export block")

var (
	exportFooter = strings.Repeat("=", exportHeaderWidth)
	exportHeader = exportFooter[:exportLabelOffset] + exportLabel +
		exportFooter[exportLabelOffset+len(exportLabel):]
)

// PrepareExportBlock wraps content between the export header and footer
// lines. The result can be read back with ParseExportBlock as long as
// content has no whitespace.
func PrepareExportBlock(content string) string {
	return exportHeader + "\n" + content + "\n" + exportFooter
}

// ParseExportBlock returns the payload of an export block, or the empty
// string when block is not one. The block must consist of exactly three
// whitespace separated words: a header starting with the export label at
// its usual offset, the payload, and a footer as long as the header.
func ParseExportBlock(block string) string {
	words := strings.Fields(block)
	if len(words) != 3 {
		return ""
	}
	header, payload, footer := words[0], words[1], words[2]

	if len(header) != len(footer) ||
		!strings.HasPrefix(header, exportFooter[:exportLabelOffset]+exportLabel) {
		return ""
	}
	return payload
}

// ExportContractTx returns an export block carrying the hex serialization
// of a contract transaction.
func ExportContractTx(tx *wire.MsgTx) (string, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return "", err
	}
	return PrepareExportBlock(hex.EncodeToString(buf.Bytes())), nil
}

// ImportContractTx reads a contract transaction from an export block and
// decodes its contract. It fails when the block is malformed or the
// transaction carries no valid contract.
func ImportContractTx(block string, params *chaincfg.Params) (*Contract, error) {
	payload := ParseExportBlock(block)
	if payload == "" {
		return nil, errors.WithStack(ErrMalformedExportBlock)
	}

	serializedTx, err := hex.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(err, "export payload is not hex")
	}
	tx := new(wire.MsgTx)
	if err := tx.Deserialize(bytes.NewReader(serializedTx)); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize contract transaction")
	}

	contract, ok := DecodeContract(tx, params)
	if !ok || !contract.IsValid() {
		return nil, errors.Errorf("transaction %s carries no contract", tx.TxHash())
	}
	return contract, nil
}
