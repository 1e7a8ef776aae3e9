package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/matst80/slask-property/pkg/types"
)

const (
	ColId = iota
	ColAddress
	ColCity
	ColPicture
	ColLatitude
	ColLongitude
	ColPrice
	ColBedrooms
	ColBathrooms
	ColCarSpaces
	columnCount
)

var ErrShortRecord = errors.New("record has too few columns")

// PropertyFromLine parses one ';' separated record. The index is the ordinal
// position of the record in the file.
func PropertyFromLine(record []string, index int) (types.Property, error) {
	if len(record) < columnCount {
		return types.Property{}, ErrShortRecord
	}
	id := strings.TrimSpace(record[ColId])
	if id == "" {
		return types.Property{}, errors.New("missing id")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[ColLatitude]), 64)
	if err != nil {
		return types.Property{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(record[ColLongitude]), 64)
	if err != nil {
		return types.Property{}, fmt.Errorf("longitude: %w", err)
	}
	ints := make([]int, 4)
	for i, col := range []int{ColPrice, ColBedrooms, ColBathrooms, ColCarSpaces} {
		if ints[i], err = strconv.Atoi(strings.TrimSpace(record[col])); err != nil {
			return types.Property{}, fmt.Errorf("column %d: %w", col, err)
		}
	}
	return types.Property{
		Id:        types.PropertyId(id),
		Index:     index,
		Address:   strings.TrimSpace(record[ColAddress]),
		City:      strings.TrimSpace(record[ColCity]),
		Picture:   strings.TrimSpace(record[ColPicture]),
		Latitude:  lat,
		Longitude: lng,
		Price:     ints[0],
		Bedrooms:  ints[1],
		Bathrooms: ints[2],
		CarSpaces: ints[3],
	}, nil
}

// ReadCsv parses properties from r, skipping the header row. Broken records
// are logged and skipped.
func ReadCsv(r io.Reader) ([]types.Property, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	ret := make([]types.Property, 0, len(records))
	for i, record := range records {
		if i == 0 {
			continue
		}
		p, err := PropertyFromLine(record, len(ret))
		if err != nil {
			log.Printf("skipping line %d: %v", i+1, err)
			continue
		}
		ret = append(ret, p)
	}
	return ret, nil
}

func ReadCsvFile(filePath string) ([]types.Property, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCsv(f)
}
