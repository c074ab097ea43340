package notifier

import (
	"bytes"
	"errors"
	"text/template"

	"DormPower/internal/model"
)

// RecordTemplate renders the latest reading as a Markdown table.
const RecordTemplate = `
## Balance Record
| **剩余电费** | **照明房间** | **空调房间** |
| --------------- | -------------------- | -------------- |
| {{.Time}}  |    {{num .LtBalance}}      |    {{num .AcBalance}} |
`

var recordTpl = template.Must(template.New("balance-record").
	Funcs(template.FuncMap{"num": FormatNumber}).
	Parse(RecordTemplate))

// FormatRecordMarkdown renders r with RecordTemplate.
func FormatRecordMarkdown(r *model.Reading) (string, error) {
	if r == nil {
		return "", errors.New("balance record: nil reading")
	}
	var buf bytes.Buffer
	if err := recordTpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
