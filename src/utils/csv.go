package utils

import (
	"fmt"
	"os"
	"path"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"synthetic-long/src/models"
)

// ExportEquityCurve writes the equity curve to <outDir>/<fname> as CSV and
// returns the output path.
func ExportEquityCurve(curve models.EquityCurve, outDir string, fname string) (string, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return "", fmt.Errorf("ExportEquityCurve: error creating output directory: %v", err)
		}
	}

	records := make([]*models.EquityCurveRecordDTO, 0, len(curve))
	for _, record := range curve {
		records = append(records, record.ToDTO())
	}

	outFile := path.Join(outDir, fname)

	file, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("ExportEquityCurve: error creating CSV file: %v", err)
	}

	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return "", fmt.Errorf("ExportEquityCurve: error writing CSV file: %v", err)
	}

	log.Infof("Exported %d equity curve rows to %s", len(records), outFile)

	return outFile, nil
}
