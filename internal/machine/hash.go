package machine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"golang.org/x/text/unicode/norm"
)

// DomainMachine is the hash domain for machine descriptions.
// The version suffix allows the encoding to change later.
const DomainMachine = "ntm/machine/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

type canonicalRule struct {
	From  string `json:"from"`
	Read  string `json:"read"`
	To    string `json:"to"`
	Write string `json:"write"`
	Right bool   `json:"right"`
}

type canonicalMachine struct {
	States      []string        `json:"states"`
	Alphabet    []string        `json:"alphabet"`
	Accept      string          `json:"accept"`
	Reject      string          `json:"reject"`
	Transitions []canonicalRule `json:"transitions"`
}

// Hash returns a content address for the machine. The name is excluded, so
// renaming a machine keeps its identity; state, symbol and rule order are
// included because they determine ids and exploration order.
func (d *Description) Hash() string {
	c := canonicalMachine{
		States:      nfcAll(d.States),
		Alphabet:    nfcAll(d.Alphabet),
		Accept:      norm.NFC.String(d.StateName(d.Accept)),
		Reject:      norm.NFC.String(d.StateName(d.Reject)),
		Transitions: make([]canonicalRule, len(d.rules)),
	}
	for i, r := range d.rules {
		c.Transitions[i] = canonicalRule{
			From:  norm.NFC.String(d.StateName(r.From)),
			Read:  norm.NFC.String(d.SymbolName(r.Read)),
			To:    norm.NFC.String(d.StateName(r.To)),
			Write: norm.NFC.String(d.SymbolName(r.Write)),
			Right: r.Right,
		}
	}
	// Only strings, bools and slices: Marshal cannot fail here.
	data, _ := json.Marshal(c)
	return hashWithDomain(DomainMachine, data)
}

func nfcAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = norm.NFC.String(s)
	}
	return out
}
