package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the section named stage of the YAML file at path into dst
// and then overlays environment variables as [Loader.Load] does. A missing
// section leaves dst unchanged. Unknown keys within the section are errors.
//
//	orders:
//	  name: orders
//	  id_prefix: ord_
//	metrics:
//	  namespace: shop
func (l Loader) LoadFile(path, stage string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := decodeStage(data, stage, dst); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return l.Load(stage, dst)
}

// LoadFile uses the default Loader.
func LoadFile(path, stage string, dst any) error {
	return Loader{}.LoadFile(path, stage, dst)
}

func decodeStage(data []byte, stage string, dst any) error {
	var sections map[string]yaml.Node
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return err
	}
	node, ok := sections[stage]
	if !ok {
		return nil
	}
	// Node.Decode cannot reject unknown fields, so re-encode the section.
	raw, err := yaml.Marshal(&node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}
