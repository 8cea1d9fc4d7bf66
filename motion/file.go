package motion

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// sequenceJSON is the interchange form of a sequence. Untracked coordinates are null.
type sequenceJSON struct {
	Label  string          `json:"label"`
	Offset *int            `json:"offset,omitempty"`
	Origin string          `json:"origin,omitempty"`
	Poses  [][][3]*float64 `json:"poses"`
}

func toJSON(s *Sequence) sequenceJSON {
	out := sequenceJSON{Label: s.label, Origin: s.origin, Poses: make([][][3]*float64, len(s.poses))}
	if s.offset != NoOffset {
		offset := s.offset
		out.Offset = &offset
	}
	for i, p := range s.poses {
		joints := make([][3]*float64, p.NumJoints())
		for j := range joints {
			for a := 0; a < 3; a++ {
				v := p.coords[3*j+a]
				if math.IsNaN(v) {
					continue
				}
				joints[j][a] = &v
			}
		}
		out.Poses[i] = joints
	}
	return out
}

func fromJSON(in sequenceJSON) *Sequence {
	poses := make([]*Pose, len(in.Poses))
	for i, joints := range in.Poses {
		p := NewPose(len(joints))
		for j, joint := range joints {
			for a, v := range joint {
				if v == nil {
					p.coords[3*j+a] = math.NaN()
					continue
				}
				p.coords[3*j+a] = *v
			}
		}
		poses[i] = p
	}
	s := NewSequence(in.Label, poses)
	if in.Offset == nil && in.Origin == "" {
		return s
	}
	offset := NoOffset
	if in.Offset != nil {
		offset = *in.Offset
	}
	return s.WithOrigin(in.Origin, offset)
}

// ReadSequences decodes a JSON array of sequences.
func ReadSequences(r io.Reader) ([]*Sequence, error) {
	var in []sequenceJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(err, "cannot decode sequences")
	}
	out := make([]*Sequence, len(in))
	for i, s := range in {
		out[i] = fromJSON(s)
	}
	return out, nil
}

// WriteSequences encodes sequences as a JSON array.
func WriteSequences(w io.Writer, seqs []*Sequence) error {
	out := make([]sequenceJSON, len(seqs))
	for i, s := range seqs {
		out[i] = toJSON(s)
	}
	return json.NewEncoder(w).Encode(out)
}

// ReadSequencesFile reads sequences from a JSON file.
func ReadSequencesFile(path string) ([]*Sequence, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	seqs, err := ReadSequences(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return seqs, nil
}

// WriteSequencesFile writes sequences to a JSON file, replacing it.
func WriteSequencesFile(path string, seqs []*Sequence) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return WriteSequences(f, seqs)
}
