// Package checkpoint saves and restores model variable dicts. A
// checkpoint is a directory with one subdirectory per variable holding a
// "meta" JSON descriptor and an "out" file of lzw compressed little
// endian float32 data.
package checkpoint

import "bytes"
import "compress/lzw"
import "encoding/json"
import "fmt"
import "os"
import "path/filepath"

import "github.com/neurlang/modelfit/nn"
import "github.com/neurlang/modelfit/tensor"

type meta struct {
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Count  int    `json:"count"`
	Digest uint32 `json:"digest"`
}

// Save writes every variable under dirpath, creating it as needed.
func Save(dirpath string, vars map[string]*tensor.Dense) error {
	for name, v := range vars {
		if err := saveVar(filepath.Join(dirpath, name), v); err != nil {
			return err
		}
	}
	return nil
}

func saveVar(dir string, v *tensor.Dense) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var raw bytes.Buffer
	if _, err := v.WriteTo(&raw); err != nil {
		return err
	}
	m := meta{
		Rows:   v.Rows(),
		Cols:   v.Cols(),
		Count:  v.Rows() * v.Cols(),
		Digest: Digest(raw.Bytes()),
	}
	mb, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "meta"), mb, 0644); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, "out"))
	if err != nil {
		return err
	}
	lw := lzw.NewWriter(file, lzw.LSB, 8)
	if _, err = lw.Write(raw.Bytes()); err == nil {
		err = lw.Close()
	} else {
		lw.Close()
	}
	file.Close()
	return err
}

// Load reads every variable found under dirpath.
func Load(dirpath string) (map[string]*tensor.Dense, error) {
	entries, err := os.ReadDir(dirpath)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]*tensor.Dense)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := loadVar(filepath.Join(dirpath, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("checkpoint: variable %s: %w", e.Name(), err)
		}
		vars[e.Name()] = v
	}
	return vars, nil
}

func loadVar(dir string) (*tensor.Dense, error) {
	mb, err := os.ReadFile(filepath.Join(dir, "meta"))
	if err != nil {
		return nil, err
	}
	var m meta
	if err := json.Unmarshal(mb, &m); err != nil {
		return nil, err
	}
	if m.Rows*m.Cols != m.Count {
		return nil, fmt.Errorf("meta count %d does not match shape %dx%d", m.Count, m.Rows, m.Cols)
	}

	file, err := os.Open(filepath.Join(dir, "out"))
	if err != nil {
		return nil, err
	}
	lr := lzw.NewReader(file, lzw.LSB, 8)

	var raw bytes.Buffer
	_, err = raw.ReadFrom(lr)
	lr.Close()
	file.Close()
	if err != nil {
		return nil, err
	}
	if raw.Len() != 4*m.Count {
		return nil, fmt.Errorf("have %d data bytes, want %d", raw.Len(), 4*m.Count)
	}
	if d := Digest(raw.Bytes()); d != m.Digest {
		return nil, fmt.Errorf("digest mismatch: stored %08x, data %08x", m.Digest, d)
	}

	v := tensor.New(m.Rows, m.Cols)
	if _, err := v.ReadFrom(&raw); err != nil {
		return nil, err
	}
	return v, nil
}

// Restore loads dirpath into matching parameters. Every parameter must
// have a unique name and a stored variable of the same shape.
func Restore(dirpath string, params []*nn.Parameter) error {
	vars, err := Load(dirpath)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("checkpoint: duplicate parameter name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		v, ok := vars[p.Name]
		if !ok {
			return fmt.Errorf("checkpoint: %s has no variable %q", dirpath, p.Name)
		}
		if v.Rows() != p.Value.Rows() || v.Cols() != p.Value.Cols() {
			return fmt.Errorf("checkpoint: variable %q is %dx%d, parameter wants %dx%d",
				p.Name, v.Rows(), v.Cols(), p.Value.Rows(), p.Value.Cols())
		}
		copy(p.Value.Data(), v.Data())
	}
	return nil
}
