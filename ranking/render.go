package ranking

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var lang language.Tag = language.Portuguese

// BoardRender 定義輸出行為
type BoardRender interface {
	Write(w io.Writer, b *Board) error
}

// Json渲染
type JsonBoardRender struct{}

func (jr *JsonBoardRender) Write(w io.Writer, b *Board) error {
	return json.NewEncoder(w).Encode(b)
}

// YAML渲染
type YAMLBoardRender struct{}

func (yr *YAMLBoardRender) Write(w io.Writer, b *Board) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(b)
}

// Text渲染：等寬字元表格，欄寬以 runewidth 計算（分類名含重音字元）。
type TextBoardRender struct{}

func (tr *TextBoardRender) Write(w io.Writer, b *Board) error {
	if _, err := io.WriteString(w, fmtRowTable("Ranking de Ausência", "Aus", b.Absence)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	_, err := io.WriteString(w, fmtRowTable("Ranking de Continuidade", "Seq", b.Continuity))
	return err
}

func fmtRowTable(title string, curLabel string, rows []Row) string {
	p := message.NewPrinter(lang)
	header := []string{"Tipo", "Grupo", curLabel, "Média", "Máx", "Sinal"}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, r := range rows {
		cells = append(cells, []string{
			r.Category,
			r.Axis,
			p.Sprintf("%d", r.Current),
			p.Sprintf("%.2f", r.Mean),
			p.Sprintf("%d", r.Max),
			r.Tier,
		})
	}

	widths := make([]int, len(header))
	for _, row := range cells {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	totalInner := len(header) - 1
	for _, w := range widths {
		totalInner += w + 2
	}
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	divider := "+"
	for _, w := range widths {
		divider += strings.Repeat("-", w+2) + "+"
	}
	divider += "\n"

	sb.WriteString("+" + strings.Repeat("-", totalInner) + "+\n")
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, row := range cells {
		sb.WriteString("|")
		for i, cell := range row {
			pad := widths[i] - runewidth.StringWidth(cell)
			sb.WriteString(" " + cell + blank(pad) + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
