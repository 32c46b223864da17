// Package axi provides the AXI4-Lite channel surface: signal bundles for the
// five valid/ready channels, response codes, handshake sampling and a
// protocol monitor.
package axi

import (
	"fmt"
	"strings"
)

// Resp is the 2-bit response code carried on the B and R channels.
type Resp uint8

// Response codes.
const (
	RespOkay          Resp = 0b00
	RespExclusiveOkay Resp = 0b01 // Not produced by this model.
	RespSlaveError    Resp = 0b10
	RespDecodeError   Resp = 0b11 // Fabric-level; not produced by this model.
)

// String returns the conventional mnemonic of the response code.
func (r Resp) String() string {
	switch r {
	case RespOkay:
		return "OKAY"
	case RespExclusiveOkay:
		return "EXOKAY"
	case RespSlaveError:
		return "SLVERR"
	case RespDecodeError:
		return "DECERR"
	default:
		return fmt.Sprintf("Resp(%d)", uint8(r))
	}
}

// ParseResp converts a mnemonic (case-insensitive) back to a Resp.
func ParseResp(s string) (Resp, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OKAY", "OK":
		return RespOkay, nil
	case "EXOKAY":
		return RespExclusiveOkay, nil
	case "SLVERR":
		return RespSlaveError, nil
	case "DECERR":
		return RespDecodeError, nil
	}
	return 0, fmt.Errorf("unknown response code %q", s)
}

// Prot holds the AxPROT protection bits. The slave ignores them.
type Prot uint8
