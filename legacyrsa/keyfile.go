package legacyrsa

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

// keyFile is the persisted JSON form. The private exponent is only
// present in the private file.
type keyFile struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	N         string `json:"N"`
	E         string `json:"e"`
	D         string `json:"d,omitempty"`
}

// Save writes {public,private}.json under dir.
func (k *Key) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	pub := keyFile{Version: "legacyrsa-v1", Timestamp: ts, N: k.N.String(), E: k.E.String()}
	if err := writeJSON(filepath.Join(dir, "public.json"), pub); err != nil {
		return err
	}
	priv := pub
	priv.D = k.d.String()
	return writeJSON(filepath.Join(dir, "private.json"), priv)
}

// Load reads private.json from dir and rebuilds the key.
func Load(dir string) (*Key, error) {
	data, err := os.ReadFile(filepath.Join(dir, "private.json"))
	if err != nil {
		return nil, err
	}
	var kf keyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, err
	}
	n, ok1 := new(big.Int).SetString(kf.N, 10)
	e, ok2 := new(big.Int).SetString(kf.E, 10)
	d, ok3 := new(big.Int).SetString(kf.D, 10)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("legacyrsa: corrupt key file in %s", dir)
	}
	return &Key{N: n, E: e, d: d}, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
