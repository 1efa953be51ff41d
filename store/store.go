package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/IhorHliba/Cinema-Seat-Simulator/hall"
)

const (
	appDirName       = "cinema-seat-simulator"
	snapshotFileName = "seats.json"
)

type seatRecord struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Sold bool `json:"sold"`
}

type snapshotEnvelope struct {
	UpdatedAt time.Time    `json:"updated_at"`
	Seats     []seatRecord `json:"seats"`
}

// DefaultPath returns the well-known snapshot location under the user
// config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, snapshotFileName), nil
}

// Load reads the persisted seat snapshot. A missing file is not an
// error: it returns an empty snapshot so a fresh hall starts cleanly on
// first run. A corrupt file is an error; callers recover by starting
// fresh.
func Load(path string) ([]hall.Seat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	seats := make([]hall.Seat, 0, len(envelope.Seats))
	for _, record := range envelope.Seats {
		state := hall.Free
		if record.Sold {
			state = hall.Sold
		}
		seats = append(seats, hall.Seat{Row: record.Row, Col: record.Col, State: state})
	}
	return seats, nil
}

// Save writes the full seat snapshot, creating parent directories as
// needed. Round-tripping through Load reproduces every seat's
// occupancy.
func Save(path string, seats []hall.Seat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	envelope := snapshotEnvelope{
		UpdatedAt: time.Now(),
		Seats:     make([]seatRecord, 0, len(seats)),
	}
	for _, seat := range seats {
		envelope.Seats = append(envelope.Seats, seatRecord{
			Row:  seat.Row,
			Col:  seat.Col,
			Sold: seat.State == hall.Sold,
		})
	}
	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
