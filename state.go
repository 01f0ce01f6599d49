package tsetlin

import (
	"bytes"
	"encoding/gob"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/config"
	"github.com/hyperifyio/tsetlin/internal/errors"
	"github.com/hyperifyio/tsetlin/rng"
)

// stateMagic and stateVersion frame an exported state blob, the same
// "magic string + version byte + gob payload" shape the teacher uses for
// its own weight files.
const stateMagic = "TSET"
const stateVersion = byte(1)

// payload is the gob-encoded body of an exported Classifier or Regressor.
type payload struct {
	Opt             config.Options
	Automaton       automaton.Snapshot
	IRNG            rng.IRNGState
	FRNG            rng.FRNGState
	NumLabels       int
	NumFeatures     int
	ClausesPerLabel int
}

func marshalPayload(p payload) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	buf.WriteByte(stateVersion)
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, errors.New(errors.ValueError, "encode state: %s", err)
	}
	return buf.Bytes(), nil
}

func unmarshalPayload(data []byte) (payload, error) {
	var p payload
	if len(data) < len(stateMagic)+1 || string(data[:len(stateMagic)]) != stateMagic {
		return p, errors.New(errors.BadJSON, "state blob missing %q magic header", stateMagic)
	}
	version := data[len(stateMagic)]
	if version != stateVersion {
		return p, errors.New(errors.BadJSON, "unsupported state version %d", version)
	}
	body := data[len(stateMagic)+1:]
	dec := gob.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&p); err != nil {
		return p, errors.New(errors.BadJSON, "decode state: %s", err)
	}
	return p, nil
}

// ExportState serializes the Classifier's full state (automata counters,
// polarity, weights, PRNG state, and configuration) into an opaque blob
// suitable for LoadClassifierState.
func (c *Classifier) ExportState() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return marshalPayload(payload{
		Opt:             c.opt,
		Automaton:       c.state.Snapshot(),
		IRNG:            c.irng.State(),
		FRNG:            c.frng.State(),
		NumLabels:       c.numLabels,
		NumFeatures:     c.numFeatures,
		ClausesPerLabel: c.clausesPerLabel,
	})
}

// LoadClassifierState reconstructs a Classifier from a blob produced by
// ExportState.
func LoadClassifierState(data []byte) (*Classifier, error) {
	p, err := unmarshalPayload(data)
	if err != nil {
		return nil, err
	}
	c := &Classifier{
		opt:             p.Opt,
		irng:            rng.NewIRNG(0),
		frng:            rng.NewFRNG(0),
		state:           automaton.FromSnapshot(p.Automaton),
		numLabels:       p.NumLabels,
		numFeatures:     p.NumFeatures,
		clausesPerLabel: p.ClausesPerLabel,
		numClauses:      p.NumLabels * p.ClausesPerLabel,
		initialized:     true,
	}
	c.irng.SetState(p.IRNG)
	c.frng.SetState(p.FRNG)
	c.scratch.EnsureClauses(c.numClauses)
	c.scratch.EnsureLabels(c.numLabels)
	return c, nil
}

// ExportState serializes the Regressor's full state into an opaque blob
// suitable for LoadRegressorState.
func (r *Regressor) ExportState() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return marshalPayload(payload{
		Opt:         r.opt,
		Automaton:   r.state.Snapshot(),
		IRNG:        r.irng.State(),
		FRNG:        r.frng.State(),
		NumFeatures: r.numFeatures,
	})
}

// LoadRegressorState reconstructs a Regressor from a blob produced by
// ExportState.
func LoadRegressorState(data []byte) (*Regressor, error) {
	p, err := unmarshalPayload(data)
	if err != nil {
		return nil, err
	}
	r := &Regressor{
		opt:         p.Opt,
		irng:        rng.NewIRNG(0),
		frng:        rng.NewFRNG(0),
		state:       automaton.FromSnapshot(p.Automaton),
		numFeatures: p.NumFeatures,
		numClauses:  int(p.Opt.ClausesPerLabel),
		initialized: true,
	}
	r.irng.SetState(p.IRNG)
	r.frng.SetState(p.FRNG)
	r.scratch.EnsureClauses(r.numClauses)
	return r, nil
}
