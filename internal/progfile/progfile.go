// Package progfile stores compiled postfix programs on disk as msgpack.
package progfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zephyrtronium/rpncalc"
)

// Current schema version. Increment when the payload format changes.
const schemaVersion uint16 = 1

// Ext is the conventional extension of program files.
const Ext = ".rpn"

// ErrSchema is returned for files written with an unknown schema version.
var ErrSchema = errors.New("progfile: unsupported schema version")

// File is a compiled program with the expression it came from.
type File struct {
	// Source is the original infix expression, kept for display.
	Source string
	// Program is the postfix token sequence.
	Program rpncalc.Program
}

type payload struct {
	Schema uint16      `msgpack:"schema"`
	Source string      `msgpack:"source"`
	Tokens []wireToken `msgpack:"tokens"`
}

type wireToken struct {
	Kind uint8   `msgpack:"k"`
	Op   uint8   `msgpack:"o,omitempty"`
	Num  float64 `msgpack:"n,omitempty"`
}

// Encode writes f to w.
func Encode(w io.Writer, f File) error {
	p := payload{
		Schema: schemaVersion,
		Source: f.Source,
		Tokens: make([]wireToken, len(f.Program)),
	}
	for i, tok := range f.Program {
		p.Tokens[i] = wireToken{Kind: uint8(tok.Kind), Op: uint8(tok.Op), Num: tok.Num}
	}
	return msgpack.NewEncoder(w).Encode(&p)
}

// Decode reads a file from r. Tokens that could not have come from ToRPN, such
// as zero tokens or non-finite numbers, are rejected.
func Decode(r io.Reader) (File, error) {
	var p payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return File{}, fmt.Errorf("progfile: decoding: %w", err)
	}
	if p.Schema != schemaVersion {
		return File{}, fmt.Errorf("%w %d", ErrSchema, p.Schema)
	}
	prog := make(rpncalc.Program, len(p.Tokens))
	for i, w := range p.Tokens {
		tok := rpncalc.Token{Kind: rpncalc.TokenKind(w.Kind), Op: rpncalc.Operator(w.Op), Num: w.Num}
		switch tok.Kind {
		case rpncalc.KindNumber:
			if math.IsNaN(w.Num) || math.IsInf(w.Num, 0) {
				return File{}, fmt.Errorf("progfile: token %d: non-finite number %v", i, w.Num)
			}
		case rpncalc.KindLeftParen, rpncalc.KindRightParen:
			// Parens are kept; evaluation reports them.
		case rpncalc.KindOperator:
			if !tok.Op.Valid() {
				return File{}, fmt.Errorf("progfile: token %d: invalid operator %d", i, w.Op)
			}
		default:
			return File{}, fmt.Errorf("progfile: token %d: invalid kind %d", i, w.Kind)
		}
		prog[i] = tok
	}
	return File{Source: p.Source, Program: prog}, nil
}

// WriteFile atomically replaces path with f.
func WriteFile(path string, f File) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*"+Ext)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if err := Encode(tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadFile reads a program file.
func ReadFile(path string) (File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fp.Close()
	f, err := Decode(fp)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
