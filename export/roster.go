// Package export builds spreadsheet downloads of the member roster.
package export

import (
	"fmt"
	"strconv"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"

	"github.com/xuri/excelize/v2"
)

var rosterHeader = []string{
	"Full Name", "Username", "Email", "Role", "Year", "Department",
	"Phone", "Device", "Lenses", "Banned",
}

// RosterWorkbook renders the member list as a single-sheet .xlsx with a bold,
// filterable header row.
func RosterWorkbook(members []*models.User) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Members"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for col, h := range rosterHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(rosterHeader), 1)
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for i, m := range members {
		year := ""
		if m.Year != 0 {
			year = strconv.Itoa(m.Year)
		}
		row := []string{
			m.FullName, m.Username, m.Email, string(m.Role), year, m.Department,
			m.Phone, m.Device, m.Lenses, strconv.FormatBool(m.IsBanned),
		}
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return f, nil
}
