package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

const (
	repositoryHeaderConstant      = "REPOSITORY"
	branchHeaderConstant          = "BRANCH"
	pathHeaderConstant            = "PATH"
	emptyListingMessageConstant   = "No clones found under %s"
	listingLineTemplateConstant   = "%s\n"
	repositoryColumnIndexConstant = 0
	primaryColorConstant          = "#8B5CF6"
	mutedColorConstant            = "#9CA3AF"
	headerColorConstant           = "#6B7280"
	successColorConstant          = "#059669"
	warningColorConstant          = "#D97706"
)

// CloneRow is one clone rendered by the listing.
type CloneRow struct {
	Repository string
	Branch     string
	Path       string
}

// RenderOptions controls terminal styling.
type RenderOptions struct {
	DisableColor bool
	ShowPaths    bool
}

// Printer writes styled human output to a single writer.
type Printer struct {
	writer   io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter binds a lipgloss renderer to writer so color detection follows the destination, not os.Stdout.
func NewPrinter(writer io.Writer, options RenderOptions) *Printer {
	renderer := lipgloss.NewRenderer(writer)
	if options.DisableColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Printer{writer: writer, renderer: renderer}
}

// Success prints a message in the success color.
func (printer *Printer) Success(message string) error {
	return printer.printLine(printer.renderer.NewStyle().Foreground(lipgloss.Color(successColorConstant)).Render(message))
}

// Warning prints a message in the warning color.
func (printer *Printer) Warning(message string) error {
	return printer.printLine(printer.renderer.NewStyle().Foreground(lipgloss.Color(warningColorConstant)).Render(message))
}

// Plain prints an unstyled message.
func (printer *Printer) Plain(message string) error {
	return printer.printLine(message)
}

// CloneTable renders clones grouped by repository. A repository name is printed only on the
// first row of its group.
func (printer *Printer) CloneTable(rows []CloneRow, managedRoot string, options RenderOptions) error {
	if len(rows) == 0 {
		emptyStyle := printer.renderer.NewStyle().Foreground(lipgloss.Color(mutedColorConstant)).Italic(true)
		return printer.printLine(emptyStyle.Render(fmt.Sprintf(emptyListingMessageConstant, managedRoot)))
	}

	headers := []string{repositoryHeaderConstant, branchHeaderConstant}
	if options.ShowPaths {
		headers = append(headers, pathHeaderConstant)
	}

	tableRows := make([][]string, 0, len(rows))
	previousRepository := ""
	for _, row := range rows {
		repositoryCell := row.Repository
		if repositoryCell == previousRepository {
			repositoryCell = ""
		}
		previousRepository = row.Repository

		tableRow := []string{repositoryCell, row.Branch}
		if options.ShowPaths {
			tableRow = append(tableRow, row.Path)
		}
		tableRows = append(tableRows, tableRow)
	}

	headerStyle := printer.renderer.NewStyle().Foreground(lipgloss.Color(headerColorConstant)).Padding(0, 1)
	repositoryStyle := printer.renderer.NewStyle().Foreground(lipgloss.Color(primaryColorConstant)).Bold(true).Padding(0, 1)
	cellStyle := printer.renderer.NewStyle().Padding(0, 1)

	cloneTable := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(printer.renderer.NewStyle().Foreground(lipgloss.Color(mutedColorConstant))).
		Headers(headers...).
		Rows(tableRows...).
		StyleFunc(func(row int, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if column == repositoryColumnIndexConstant {
				return repositoryStyle
			}
			return cellStyle
		})

	return printer.printLine(cloneTable.Render())
}

func (printer *Printer) printLine(text string) error {
	_, writeError := fmt.Fprintf(printer.writer, listingLineTemplateConstant, text)
	return writeError
}
