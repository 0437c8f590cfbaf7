package models

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidSnapshot is returned when a snapshot does not match the snapshot schema.
var ErrInvalidSnapshot = errors.New("invalid game snapshot")

//go:embed snapshot.schema.json
var snapshotSchemaJSON string

var snapshotSchema = jsonschema.MustCompileString("snapshot.schema.json", snapshotSchemaJSON)

// DecodeGameSnapshot validates data against the snapshot schema and decodes it.
func DecodeGameSnapshot(data []byte) (*GameSnapshot, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := snapshotSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	snapshot := &GameSnapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snapshot, nil
}

// EncodeGameSnapshot encodes a snapshot as indented JSON.
func EncodeGameSnapshot(snapshot *GameSnapshot) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// Standings ranks the players of a snapshot by balance, highest first.
// Exited players are ranked after active ones.
func (s *GameSnapshot) Standings() []Standing {
	standings := make([]Standing, 0, len(s.Players))
	for _, p := range s.Players {
		properties := make([]int, len(p.Properties))
		copy(properties, p.Properties)
		standings = append(standings, Standing{
			PlayerID:   p.PlayerID,
			Token:      p.Token,
			Balance:    p.Balance,
			Properties: properties,
			HasExited:  p.HasExited,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].HasExited != standings[j].HasExited {
			return !standings[i].HasExited
		}
		return standings[i].Balance > standings[j].Balance
	})
	return standings
}
