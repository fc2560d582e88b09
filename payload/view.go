package payload

// CallView is everything the presentation layer needs to show a tool call.
type CallView struct {
	Rows []Row    // generic recursive rows of the arguments
	Args []ArgRow // flat table with date detection
	Copy string   // clipboard text
}

// Empty reports whether the call has no arguments to show.
func (v CallView) Empty() bool {
	return len(v.Rows) == 0
}

// ViewCall renders a tool call. Tool calls are never truncated.
func ViewCall(tc ToolCall, dates DateFormatter) CallView {
	return CallView{
		Rows: RenderRows(tc.Args),
		Args: ArgRows(tc.Args, dates),
		Copy: ExportToolCall(tc),
	}
}

// ResultView is everything the presentation layer needs to show a tool
// result in a given disclosure state. Exactly one of Rows and Text is
// meaningful, depending on Structured.
type ResultView struct {
	Content    Content
	Structured bool
	Seq        bool   // structured content is an array
	Rows       []Row  // visible top-level rows
	Total      int    // top-level rows before truncation
	Text       string // visible text
	Offer      bool   // show the expand/collapse toggle
	Expanded   bool
	Copy       string
}

// Hidden returns how many top-level rows the collapsed view leaves out.
func (v ResultView) Hidden() int {
	return v.Total - len(v.Rows)
}

// ViewResult classifies and renders a tool result under policy p.
func (p Policy) ViewResult(r ToolResult, st DisclosureState) ResultView {
	c := Classify(r.Content)
	full := NormalizeNewlines(PlainText(c))
	view := ResultView{
		Content:  c,
		Offer:    p.Decide(c),
		Expanded: st.Expanded,
		Copy:     full,
	}
	if s, ok := c.(Structured); ok {
		rows := RenderRows(s.Value)
		view.Structured = true
		view.Seq = s.Value.Kind() == KindArray
		view.Total = len(rows)
		view.Rows = p.VisibleRows(rows, view.Seq, st.Expanded)
		return view
	}
	view.Text = p.VisibleText(full, st.Expanded)
	return view
}
