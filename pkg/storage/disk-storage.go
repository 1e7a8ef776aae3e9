package storage

import (
	"compress/gzip"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-property/pkg/types"
)

const propertiesFile = "properties.json"
const gzippedPropertiesFile = "properties.json.gz"

//go:embed sample/properties.json
var sampleProperties []byte

func SampleProperties() ([]types.Property, error) {
	ret := make([]types.Property, 0)
	if err := sonic.Unmarshal(sampleProperties, &ret); err != nil {
		return nil, fmt.Errorf("decode sample properties: %w", err)
	}
	return ret, nil
}

// LoadProperties hands the property set to every handler. The gzipped file
// wins over the plain one, the built in sample set is used when neither exists.
func (d *DiskStorage) LoadProperties(handlers ...types.PropertyHandler) error {
	properties, err := d.readProperties()
	if err != nil {
		return err
	}
	log.Printf("loaded %d properties", len(properties))
	for _, h := range handlers {
		if err := h.HandleProperties(properties); err != nil {
			return err
		}
	}
	return nil
}

func (d *DiskStorage) readProperties() ([]types.Property, error) {
	properties := make([]types.Property, 0)
	err := d.LoadGzippedJson(&properties, gzippedPropertiesFile)
	if err == nil {
		return properties, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	err = d.LoadJson(&properties, propertiesFile)
	if err == nil {
		return properties, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	log.Printf("no property file in %s, using sample data", d.RootFolder)
	return SampleProperties()
}

func (d *DiskStorage) SaveProperties(properties []types.Property) error {
	if err := os.MkdirAll(d.RootFolder, 0755); err != nil {
		return err
	}
	return d.SaveGzippedJson(properties, gzippedPropertiesFile)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	bytes, err := sonic.Marshal(data)
	if err != nil {
		return err
	}

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	if _, err = zipWriter.Write(bytes); err != nil {
		_ = zipWriter.Close()
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = zipWriter.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	bytes, err := io.ReadAll(zipReader)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(bytes, data)
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := p.GetFileName(name)

	bytes, err := sonic.Marshal(data)
	if err != nil {
		return err
	}
	if err = os.WriteFile(tmpFileName, bytes, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	bytes, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(bytes, data)
}
