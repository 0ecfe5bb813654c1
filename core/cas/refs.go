package cas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ref is the structure stored in ref files.
type ref struct {
	Hash string `json:"hash"`
	Size int    `json:"size"`
}

// Bind points the ref name at a stored blob. Names are fingerprints, so
// they follow the hash format. Rebinding a name replaces the old target.
func (s *Store) Bind(name, hash string) error {
	if !isValidHash(name) || !isValidHash(hash) {
		return ErrInvalidHash
	}
	data, err := s.Get(hash)
	if err != nil {
		return err
	}
	pointer, err := json.Marshal(ref{Hash: hash, Size: len(data)})
	if err != nil {
		return fmt.Errorf("failed to marshal ref: %w", err)
	}
	return writeAtomic(s.pathForRef(name), ".ref-*", pointer)
}

// Lookup returns the blob hash a ref points at.
// Returns ErrBlobNotFound if no ref exists.
func (s *Store) Lookup(name string) (string, error) {
	if !isValidHash(name) {
		return "", ErrInvalidHash
	}

	data, err := os.ReadFile(s.pathForRef(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrBlobNotFound
		}
		return "", fmt.Errorf("failed to read ref: %w", err)
	}

	var r ref
	if err := json.Unmarshal(data, &r); err != nil {
		return "", fmt.Errorf("failed to parse ref: %w", err)
	}
	return r.Hash, nil
}

// GetRef returns the content of the blob a ref points at.
func (s *Store) GetRef(name string) ([]byte, error) {
	hash, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.Get(hash)
}

// PutRef stores data and binds name to it.
func (s *Store) PutRef(name string, data []byte) (string, error) {
	hash, err := s.Put(data)
	if err != nil {
		return "", err
	}
	if err := s.Bind(name, hash); err != nil {
		return "", err
	}
	return hash, nil
}

// pathForRef returns the path of a ref file: <root>/refs/<first2>/<name>.json
func (s *Store) pathForRef(name string) string {
	return filepath.Join(s.root, "refs", name[:2], name+".json")
}
