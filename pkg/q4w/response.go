package q4w

// Build runs the whole pipeline: aggregate at now, scope by pool and user,
// summarize the scoped set, then status-filter, sort and page it.
// The summary ignores the status filter and the page window.
func Build(entries []RawEntry, f FilterState, page Page, now int64) Response {
	positions := Aggregate(entries, now)
	positions = FilterByPool(positions, f.PoolAddress)
	positions = FilterByUser(positions, f.UserAddress)

	summary := Summarize(positions)

	visible := FilterByStatus(positions, f.Status)
	Sort(visible, f.OrderBy, f.OrderDir)

	results, total := Paginate(visible, page)
	return Assemble(results, summary, total, now)
}

// Assemble packages a page. Results is never nil so it encodes as [].
func Assemble(results []Position, summary Summary, totalCount int, now int64) Response {
	if results == nil {
		results = []Position{}
	}
	return Response{
		Results:          results,
		Summary:          summary,
		TotalCount:       totalCount,
		CurrentTimestamp: now,
	}
}
