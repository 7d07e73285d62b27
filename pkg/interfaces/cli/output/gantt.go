package output

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/reflowlabs/reflow/pkg/application/dto"
)

// GanttChart renders a reflow schedule as an SVG timeline, one row per
// work center.
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	StartTime    time.Time
	EndTime      time.Time
}

// GanttBar represents a single scheduled work order on the chart.
type GanttBar struct {
	WorkOrderID    string
	WorkCenterID   string
	NewStart       time.Time
	NewEnd         time.Time
	WasRescheduled bool
	IsFixed        bool
	X              int
	Width          int
	Color          string
}

// NewGanttChart creates a Gantt chart sized to fit every result's window.
func NewGanttChart(result dto.ReflowResponseDTO) *GanttChart {
	if len(result.Results) == 0 {
		return &GanttChart{
			Width:        800,
			Height:       200,
			MarginLeft:   150,
			MarginTop:    50,
			MarginRight:  50,
			MarginBottom: 50,
			RowHeight:    25,
		}
	}

	startTime := result.Results[0].NewStart
	endTime := result.Results[0].NewEnd
	for _, r := range result.Results {
		if r.NewStart.Before(startTime) {
			startTime = r.NewStart
		}
		if r.NewEnd.After(endTime) {
			endTime = r.NewEnd
		}
	}

	totalDuration := endTime.Sub(startTime)
	padding := time.Duration(float64(totalDuration) * 0.1)
	startTime = startTime.Add(-padding)
	endTime = endTime.Add(padding)

	centers := make(map[string]int)
	for _, r := range result.Results {
		centers[r.WorkCenterID]++
	}

	rowHeight := 30
	height := len(centers)*rowHeight + 100

	return &GanttChart{
		Width:        1200,
		Height:       height,
		MarginLeft:   200,
		MarginTop:    60,
		MarginRight:  100,
		MarginBottom: 80,
		RowHeight:    rowHeight,
		StartTime:    startTime,
		EndTime:      endTime,
	}
}

// GenerateSVG renders the chart for result.
func (gc *GanttChart) GenerateSVG(result dto.ReflowResponseDTO) string {
	if len(result.Results) == 0 {
		return gc.generateEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.center-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.order-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.order-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Reflow Schedule</text>`, gc.Width/2))

	bars := gc.createBars(result.Results)
	centerRows := gc.organizeBars(bars)

	gc.drawTimeAxis(&svg)
	gc.drawTimeGrid(&svg, len(centerRows))
	gc.drawCenterRows(&svg, centerRows)
	gc.drawLegend(&svg)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (gc *GanttChart) createBars(results []dto.ResultDTO) []GanttBar {
	var bars []GanttBar
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	totalDuration := gc.EndTime.Sub(gc.StartTime)

	for _, r := range results {
		startOffset := r.NewStart.Sub(gc.StartTime)
		duration := r.NewEnd.Sub(r.NewStart)

		x := gc.MarginLeft + int(float64(startOffset)/float64(totalDuration)*float64(chartWidth))
		width := int(float64(duration) / float64(totalDuration) * float64(chartWidth))
		if width < 2 {
			width = 2
		}

		bars = append(bars, GanttBar{
			WorkOrderID:    r.WorkOrderID,
			WorkCenterID:   r.WorkCenterID,
			NewStart:       r.NewStart,
			NewEnd:         r.NewEnd,
			WasRescheduled: r.WasRescheduled,
			IsFixed:        r.IsFixed,
			X:              x,
			Width:          width,
			Color:          gc.getBarColor(r.IsFixed, r.WasRescheduled),
		})
	}

	return bars
}

func (gc *GanttChart) organizeBars(bars []GanttBar) map[string][]GanttBar {
	rows := make(map[string][]GanttBar)
	for _, bar := range bars {
		rows[bar.WorkCenterID] = append(rows[bar.WorkCenterID], bar)
	}
	for id := range rows {
		sort.Slice(rows[id], func(i, j int) bool {
			return rows[id][i].NewStart.Before(rows[id][j].NewStart)
		})
	}
	return rows
}

func (gc *GanttChart) drawTimeAxis(svg *strings.Builder) {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	totalDuration := gc.EndTime.Sub(gc.StartTime)

	days := int(math.Ceil(totalDuration.Hours() / 24))
	var interval time.Duration
	var labelFormat string

	switch {
	case days <= 30:
		interval, labelFormat = 24*time.Hour, "Jan 2"
	case days <= 180:
		interval, labelFormat = 7*24*time.Hour, "Jan 2"
	default:
		interval, labelFormat = 30*24*time.Hour, "Jan 2006"
	}

	for t := gc.StartTime.Truncate(interval); t.Before(gc.EndTime); t = t.Add(interval) {
		offset := t.Sub(gc.StartTime)
		x := gc.MarginLeft + int(float64(offset)/float64(totalDuration)*float64(chartWidth))
		if x >= gc.MarginLeft && x <= gc.Width-gc.MarginRight {
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`,
				x, gc.Height-gc.MarginBottom+15, t.Format(labelFormat)))
		}
	}

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		gc.MarginLeft, gc.Height-gc.MarginBottom, gc.Width-gc.MarginRight, gc.Height-gc.MarginBottom))
}

func (gc *GanttChart) drawTimeGrid(svg *strings.Builder, numRows int) {
	if numRows == 0 {
		return
	}
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	totalDuration := gc.EndTime.Sub(gc.StartTime)
	gridTop := gc.MarginTop

	maxRowY := gc.Height - gc.MarginBottom - 30
	availableHeight := maxRowY - gc.MarginTop
	adjustedRowHeight := availableHeight / numRows
	if adjustedRowHeight > gc.RowHeight {
		adjustedRowHeight = gc.RowHeight
	}
	gridBottom := gc.MarginTop + numRows*adjustedRowHeight

	days := int(math.Ceil(totalDuration.Hours() / 24))
	var interval time.Duration
	switch {
	case days <= 30:
		interval = 24 * time.Hour
	case days <= 180:
		interval = 7 * 24 * time.Hour
	default:
		interval = 30 * 24 * time.Hour
	}

	for t := gc.StartTime.Truncate(interval); t.Before(gc.EndTime); t = t.Add(interval) {
		offset := t.Sub(gc.StartTime)
		x := gc.MarginLeft + int(float64(offset)/float64(totalDuration)*float64(chartWidth))
		if x >= gc.MarginLeft && x <= gc.Width-gc.MarginRight {
			svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
				x, gridTop, x, gridBottom))
		}
	}
}

func (gc *GanttChart) drawCenterRows(svg *strings.Builder, rows map[string][]GanttBar) {
	var ids []string
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return rows[ids[i]][0].NewStart.Before(rows[ids[j]][0].NewStart)
	})

	maxRowY := gc.Height - gc.MarginBottom - 30
	availableHeight := maxRowY - gc.MarginTop
	adjustedRowHeight := availableHeight / len(ids)
	if adjustedRowHeight > gc.RowHeight {
		adjustedRowHeight = gc.RowHeight
	}

	for i, id := range ids {
		y := gc.MarginTop + i*adjustedRowHeight
		bars := rows[id]

		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="center-label" text-anchor="end">%s</text>`,
			gc.MarginLeft-15, y+adjustedRowHeight/2+4, id))

		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			gc.MarginLeft, y+adjustedRowHeight, gc.Width-gc.MarginRight, y+adjustedRowHeight))

		for _, bar := range bars {
			gc.drawBar(svg, bar, y, adjustedRowHeight)
		}
	}
}

func (gc *GanttChart) drawBar(svg *strings.Builder, bar GanttBar, rowY int, rowHeight int) {
	barHeight := rowHeight - 4
	barY := rowY + 2

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="order-bar"/>`,
		bar.X, barY, bar.Width, barHeight, bar.Color))

	if bar.Width > 40 {
		textX := bar.X + bar.Width/2
		textY := barY + barHeight/2 + 3
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="order-text" text-anchor="middle">%s</text>`,
			textX, textY, bar.WorkOrderID))
	}

	tooltipText := fmt.Sprintf("Order: %s, Center: %s, Start: %s, End: %s, Rescheduled: %t",
		bar.WorkOrderID, bar.WorkCenterID,
		bar.NewStart.Format(time.RFC3339), bar.NewEnd.Format(time.RFC3339), bar.WasRescheduled)
	svg.WriteString(fmt.Sprintf(`<title>%s</title>`, tooltipText))
}

func (gc *GanttChart) drawLegend(svg *strings.Builder) {
	legendX := gc.Width - gc.MarginRight - 200
	legendY := 50

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="180" height="60" fill="white" stroke="#ccc" stroke-width="1"/>`,
		legendX, legendY))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="center-label" font-weight="bold">Legend</text>`,
		legendX+10, legendY+15))

	items := []struct {
		color string
		label string
	}{
		{"#4CAF50", "On original schedule"},
		{"#FF9800", "Rescheduled"},
		{"#9E9E9E", "Fixed / maintenance"},
	}

	for i, item := range items {
		itemY := legendY + 25 + i*12
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="8" fill="%s"/>`,
			legendX+10, itemY, item.color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s</text>`,
			legendX+30, itemY+6, item.label))
	}
}

func (gc *GanttChart) getBarColor(isFixed, wasRescheduled bool) string {
	if isFixed {
		return "#9E9E9E"
	}
	if wasRescheduled {
		return "#FF9800"
	}
	return "#4CAF50"
}

func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Scheduled Work Orders</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, gc.Width, gc.Height, gc.Width, gc.Height, gc.Width/2, gc.Height/2)
}
