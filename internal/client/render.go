package client

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RenderLookups prints one row per lookup: found airports with their city and country,
// everything else with the status the server answered.
func RenderLookups(w io.Writer, results []*LookupResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Code", "Status", "IATA", "ICAO", "Name", "City", "Country"})
	table.SetBorder(false)

	for _, res := range results {
		if res.Airport == nil {
			table.Append([]string{res.Code, strconv.Itoa(res.Status), "", "", res.Body, "", ""})
			continue
		}

		airport := res.Airport.Airport
		country := "-"
		if airport.Address.Country != nil {
			country = str(airport.Address.Country.Name)
		}
		table.Append([]string{
			res.Code,
			strconv.Itoa(res.Status),
			str(airport.IATACode),
			str(airport.ICAOCode),
			str(airport.Name),
			str(airport.Address.City.Name),
			country,
		})
	}

	table.Render()
}

// RenderSmoke prints PASS/FAIL lines and returns the number of failures.
func RenderSmoke(w io.Writer, results []ScenarioResult) int {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)

	failures := 0
	for _, res := range results {
		if res.Err == nil {
			pass.Fprint(w, "PASS ")
			fmt.Fprintln(w, res.Name)
			continue
		}
		failures++
		fail.Fprint(w, "FAIL ")
		fmt.Fprint(w, res.Name+" ")
		faint.Fprintln(w, res.Err.Error())
	}
	return failures
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
