package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/sahayak/internal/models"
)

// xlsxColumns is the header row of every locality sheet.
var xlsxColumns = []string{
	"id", "name", "category", "rating", "review_count", "price_tier", "address",
	"phone", "description", "availability", "image_url", "latitude", "longitude",
	"services", "year_established", "is_verified",
}

const servicesSep = ";"

// ParseXLSX reads a workbook with one sheet per locality. The sheet name is the
// locality name, the first row names the columns, and services are separated by ";".
func ParseXLSX(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var ds Dataset
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		loc := Locality{Name: strings.TrimSpace(sheet)}
		if len(rows) > 0 {
			header := make(map[string]int, len(rows[0]))
			for i, col := range rows[0] {
				header[strings.ToLower(strings.TrimSpace(col))] = i
			}
			for n, row := range rows[1:] {
				if isBlankRow(row) {
					continue
				}
				p, err := providerFromRow(header, row)
				if err != nil {
					return nil, fmt.Errorf("sheet %q row %d: %w", sheet, n+2, err)
				}
				loc.Providers = append(loc.Providers, p)
			}
		}
		ds.Localities = append(ds.Localities, loc)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func providerFromRow(header map[string]int, row []string) (models.Provider, error) {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	var p models.Provider
	var err error
	p.ID = cell("id")
	p.Name = cell("name")
	p.Category = strings.ToLower(cell("category"))
	p.Address = cell("address")
	p.Phone = cell("phone")
	p.Description = cell("description")
	p.Availability = cell("availability")
	p.ImageURL = cell("image_url")
	if p.Rating, err = parseFloat(cell("rating")); err != nil {
		return p, fmt.Errorf("rating: %w", err)
	}
	if p.ReviewCount, err = parseInt(cell("review_count")); err != nil {
		return p, fmt.Errorf("review_count: %w", err)
	}
	if p.PriceTier, err = models.ParsePriceTier(cell("price_tier")); err != nil {
		return p, err
	}
	if p.Latitude, err = parseFloat(cell("latitude")); err != nil {
		return p, fmt.Errorf("latitude: %w", err)
	}
	if p.Longitude, err = parseFloat(cell("longitude")); err != nil {
		return p, fmt.Errorf("longitude: %w", err)
	}
	if p.YearEstablished, err = parseInt(cell("year_established")); err != nil {
		return p, fmt.Errorf("year_established: %w", err)
	}
	if v := cell("is_verified"); v != "" {
		if p.IsVerified, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("is_verified: %w", err)
		}
	}
	for _, s := range strings.Split(cell("services"), servicesSep) {
		if s = strings.TrimSpace(s); s != "" {
			p.Services = append(p.Services, s)
		}
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// WriteXLSX writes ds as a workbook readable by ParseXLSX.
func WriteXLSX(w io.Writer, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, loc := range ds.Localities {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), loc.Name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(loc.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", loc.Name, err)
		}
		header := make([]interface{}, len(xlsxColumns))
		for j, col := range xlsxColumns {
			header[j] = col
		}
		if err := f.SetSheetRow(loc.Name, "A1", &header); err != nil {
			return err
		}
		for j, p := range loc.Providers {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			row := []interface{}{
				p.ID, p.Name, p.Category, p.Rating, p.ReviewCount, string(p.PriceTier), p.Address,
				p.Phone, p.Description, p.Availability, p.ImageURL, p.Latitude, p.Longitude,
				strings.Join(p.Services, servicesSep), p.YearEstablished, p.IsVerified,
			}
			if err := f.SetSheetRow(loc.Name, cell, &row); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
