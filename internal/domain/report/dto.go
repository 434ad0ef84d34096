package report

// AttendanceExport is a rendered spreadsheet ready to be downloaded or written to disk
type AttendanceExport struct {
	Filename    string
	ContentType string
	Content     []byte
}
