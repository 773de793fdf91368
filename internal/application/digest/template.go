package digest

import (
	"bytes"
	"html/template"
)

// digestTmpl is the HTML body of the digest email. Kept deliberately plain:
// most clients strip anything fancier anyway.
var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; max-width: 640px;">
  <h2>Hi {{.UserName}},</h2>
  <p>Here is your HSE summary for <strong>{{.TenantName}}</strong>.</p>

  {{if .OverdueIncidents}}
  <h3 style="color:#b00020;">Overdue incidents ({{len .OverdueIncidents}})</h3>
  <ul>
    {{range .OverdueIncidents}}<li>{{.Title}} &mdash; due {{.Due.Format "2 Jan 2006"}}</li>{{end}}
  </ul>
  {{end}}

  {{if .OverdueMeasures}}
  <h3 style="color:#b00020;">Overdue measures ({{len .OverdueMeasures}})</h3>
  <ul>
    {{range .OverdueMeasures}}<li>{{.Title}} &mdash; due {{.Due.Format "2 Jan 2006"}}</li>{{end}}
  </ul>
  {{end}}

  {{if .UpcomingMeasures}}
  <h3>Measures due soon</h3>
  <ul>
    {{range .UpcomingMeasures}}<li>{{.Title}} &mdash; due {{.Due.Format "2 Jan 2006"}}</li>{{end}}
  </ul>
  {{end}}

  {{if .ExpiringTraining}}
  <h3>Training expiring</h3>
  <ul>
    {{range .ExpiringTraining}}<li>{{.Title}} &mdash; expires {{.Due.Format "2 Jan 2006"}}</li>{{end}}
  </ul>
  {{end}}

  {{if .UpcomingEvents}}
  <h3>Upcoming audits, inspections and meetings</h3>
  <ul>
    {{range .UpcomingEvents}}<li>{{.Title}} ({{.Kind}}) &mdash; {{.Due.Format "2 Jan 2006"}}</li>{{end}}
  </ul>
  {{end}}

  {{if or .Reviews.Documents .Reviews.Chemicals .Reviews.Risks}}
  <h3>Due for review</h3>
  <ul>
    {{if .Reviews.Documents}}<li>{{.Reviews.Documents}} document(s)</li>{{end}}
    {{if .Reviews.Chemicals}}<li>{{.Reviews.Chemicals}} chemical(s)</li>{{end}}
    {{if .Reviews.Risks}}<li>{{.Reviews.Risks}} risk assessment(s)</li>{{end}}
  </ul>
  {{end}}

  {{if .UnreadNotifications}}
  <p>You have <strong>{{.UnreadNotifications}}</strong> unread notification(s).</p>
  {{end}}

  <p style="color:#888; font-size:12px;">You receive this email because digests
  are enabled on your profile.</p>
</body>
</html>`))

// Render produces the digest HTML for one user.
func Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
