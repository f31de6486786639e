package feed

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lmarchen/commentdeck/app"
	"github.com/lmarchen/commentdeck/tui/common"
)

// Each post renders as a 2-line body inside a rounded border: 4 lines.
const rowHeight = 4

// Reserved height: header (~3), status bar (~2), bottom padding (~1).
const reservedHeight = 6

func (m Model) visibleSlots() int {
	available := m.height - reservedHeight
	if available < rowHeight {
		return 1
	}
	return available / rowHeight
}

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Padding(0, 0, 0, 1).Render("💬 CommentDeck")
	board := common.BoardStyle.MarginLeft(1).Render("r/" + m.board)
	b.WriteString(title + " " + board + common.OrderStyle.Render(m.orderLabel()) + "\n\n")

	switch {
	case m.boardInput.active:
		b.WriteString(common.PromptStyle.Render("board: r/"+m.boardInput.buffer+"▌") + "\n")
		b.WriteString("\n  Enter to switch, Esc to cancel.\n")

	case m.loading && len(m.posts) == 0:
		b.WriteString(fmt.Sprintf("  %s Loading r/%s...\n", m.spinner.View(), m.board))

	case m.err != nil:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")

	case len(m.posts) == 0:
		b.WriteString("  Nothing here. Press b to pick another board.\n")

	default:
		b.WriteString(m.renderList())
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderList() string {
	slots := m.visibleSlots()

	start := m.startIndex
	if start < 0 {
		start = 0
	}
	if start >= len(m.posts) {
		start = len(m.posts) - 1
	}
	end := start + slots
	if end > len(m.posts) {
		end = len(m.posts)
	}

	contentWidth := m.width - 6
	if contentWidth < 20 {
		contentWidth = 20
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		p := m.posts[i]

		titleLine := common.TruncateRow(common.TitleStyle.Render(p.Title), contentWidth)
		meta := fmt.Sprintf("%s %s  ↑ %s  %s %s",
			common.AuthorStyle.Render("@"+p.Author),
			common.TimestampStyle.Render(humanize.Time(p.CreatedAt)),
			common.CompactCount(p.Score),
			common.CommentsStyle.Render("💬"),
			common.CommentsStyle.Render(common.CompactCount(p.Comments)),
		)
		body := titleLine + "\n" + common.TruncateRow(meta, contentWidth)

		if i == m.cursor {
			b.WriteString(common.SelectedStyle.Width(contentWidth + 2).Render(body))
		} else {
			b.WriteString(common.UnselectedStyle.Width(contentWidth + 2).Render(body))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) orderLabel() string {
	if !m.sorted {
		return "· fetch order"
	}
	if m.order == app.SortCommentsDesc {
		return "▼ comments"
	}
	return "▲ comments"
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.sorting {
		parts = append(parts, m.spinner.View()+" sorting…")
	}
	if m.notice != "" {
		parts = append(parts, common.SuccessStyle.Render(m.notice))
	}
	parts = append(parts, "↑/↓ move · s/S sort by comments · u fetch order · b board · r refresh · o open · q quit")
	return common.StatusBarStyle.Render(strings.Join(parts, "  "))
}
