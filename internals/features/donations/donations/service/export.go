package service

import (
	"bytes"
	"encoding/csv"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"mwit_alumni_backend/internals/features/donations/donations/model"
)

const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"

	exportSheet = "Donations"
	timeLayout  = "2006-01-02 15:04:05"
	dateLayout  = "2006-01-02"
)

var exportHeader = []string{
	"donation_id", "created_at", "name", "email", "phone", "tax_id", "address",
	"generation", "amount", "transfer_date", "status", "publication_consent",
	"slip_url", "message", "approved_at",
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func fmtTime(t *time.Time, layout string, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(loc).Format(layout)
}

func exportRow(d *model.Donation, loc *time.Location) []string {
	created := d.CreatedAt
	return []string{
		d.DonationID.String(),
		fmtTime(&created, timeLayout, loc),
		d.DonationName,
		d.DonationEmail,
		str(d.DonationPhone),
		str(d.DonationTaxID),
		str(d.DonationAddress),
		str(d.DonationGeneration),
		d.DonationAmount.StringFixed(2),
		fmtTime(d.DonationTransferDate, dateLayout, loc),
		d.DonationStatus,
		d.DonationPublicationConsent,
		str(d.DonationSlipURL),
		str(d.DonationMessage),
		fmtTime(d.DonationApprovedAt, timeLayout, loc),
	}
}

// WriteCSV writes a UTF-8 BOM first so spreadsheet apps read Thai names correctly.
func WriteCSV(w io.Writer, list []model.Donation, loc *time.Location) error {
	if _, err := w.Write([]byte("\xEF\xBB\xBF")); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i := range list {
		if err := cw.Write(exportRow(&list[i], loc)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BuildXLSX renders the list into a single-sheet workbook. Amounts are numeric cells.
func BuildXLSX(list []model.Donation, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i := range list {
		row := exportRow(&list[i], loc)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cells[8] = list[i].DonationAmount.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
