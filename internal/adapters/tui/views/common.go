package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as an error message
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// listRows is how many list rows fit after the title, message and help
// lines. Unknown heights show everything.
func (s *ViewState) listRows(chrome int) int {
	if s.Height <= 0 {
		return 0
	}
	return max(s.Height-chrome, 3)
}

// visibleWindow returns the [start, end) slice of a list of total rows
// that keeps cursor on screen. rows <= 0 means unbounded.
func visibleWindow(cursor, total, rows int) (int, int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := cursor - rows/2
	start = max(start, 0)
	start = min(start, total-rows)
	return start, start + rows
}

// clampCursor keeps cursor within [0, total)
func clampCursor(cursor, total int) int {
	if cursor >= total {
		cursor = total - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
