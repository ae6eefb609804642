// Package spm reads the part of a SentencePiece model file that a
// vocabulary needs: the ordered list of piece records. The file is a
// serialized protobuf message; only the piece fields are decoded and every
// other field is skipped over at the wire level, so the rest of the schema
// stays opaque.
package spm

import (
	"math"
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// PieceType mirrors the piece type enum of the SentencePiece model schema.
type PieceType int32

const (
	TypeNormal      PieceType = 1
	TypeUnknown     PieceType = 2
	TypeControl     PieceType = 3
	TypeUserDefined PieceType = 4
	TypeUnused      PieceType = 5
	TypeByte        PieceType = 6
)

// Field numbers from the SentencePiece model schema.
const (
	fieldModelPieces = 1 // ModelProto.pieces, repeated message
	fieldPieceText   = 1 // SentencePiece.piece, string
	fieldPieceScore  = 2 // SentencePiece.score, float
	fieldPieceType   = 3 // SentencePiece.type, enum
)

// Piece is a single piece record. Its position in Model.Pieces is the
// token id the model assigns to it.
type Piece struct {
	Text  string
	Score float32
	Type  PieceType
}

// Model is the decoded piece list of a SentencePiece model file.
type Model struct {
	Pieces []Piece
}

// Open memory-maps the model file at path and parses its piece list.
func Open(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "spm: open %s", path)
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "spm: mmap %s", path)
	}
	defer data.Unmap()

	model, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "spm: parse %s", path)
	}
	return model, nil
}

// Parse decodes the piece list from raw model bytes. Piece text is copied
// out of data, so the result stays valid after data is unmapped or reused.
func Parse(data []byte) (*Model, error) {
	model := &Model{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "read field tag")
		}
		b = b[n:]

		if num == fieldModelPieces && typ == protowire.BytesType {
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "read piece record %d", len(model.Pieces))
			}
			b = b[n:]
			piece, err := parsePiece(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "piece record %d", len(model.Pieces))
			}
			model.Pieces = append(model.Pieces, piece)
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "skip field %d", num)
		}
		b = b[n:]
	}
	return model, nil
}

// parsePiece decodes one SentencePiece record.
func parsePiece(raw []byte) (Piece, error) {
	// The schema's default piece type is normal.
	piece := Piece{Type: TypeNormal}
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return Piece{}, errors.Wrap(protowire.ParseError(n), "read field tag")
		}
		raw = raw[n:]

		switch {
		case num == fieldPieceText && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(raw)
			if n < 0 {
				return Piece{}, errors.Wrap(protowire.ParseError(n), "read piece text")
			}
			piece.Text = string(v)
			raw = raw[n:]
		case num == fieldPieceScore && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(raw)
			if n < 0 {
				return Piece{}, errors.Wrap(protowire.ParseError(n), "read piece score")
			}
			piece.Score = math.Float32frombits(v)
			raw = raw[n:]
		case num == fieldPieceType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return Piece{}, errors.Wrap(protowire.ParseError(n), "read piece type")
			}
			piece.Type = PieceType(v)
			raw = raw[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, raw)
			if n < 0 {
				return Piece{}, errors.Wrapf(protowire.ParseError(n), "skip field %d", num)
			}
			raw = raw[n:]
		}
	}
	return piece, nil
}
