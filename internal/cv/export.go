package cv

import (
	"bytes"
	"fmt"
	"html/template"
)

var exportTmpl = template.Must(template.New("cv").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.FullName}} - CV</title>
  <style>
    body { font-family: 'Helvetica', 'Arial', sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
    .header { text-align: center; margin-bottom: 30px; }
    .profile-img { width: 150px; height: 150px; border-radius: 50%; object-fit: cover; margin: 0 auto 20px; display: block; }
    h1 { color: #4A6FA5; margin-bottom: 5px; }
    .contact-info { margin-bottom: 10px; }
    .section { margin-bottom: 30px; }
    .section-title { color: #4A6FA5; border-bottom: 2px solid #4A6FA5; padding-bottom: 5px; margin-bottom: 15px; }
    .section-item { margin-bottom: 20px; }
    .section-item h3 { margin-bottom: 5px; color: #333; }
    .date { color: #666; font-style: italic; margin-bottom: 5px; }
    .skill-tag { display: inline-block; background-color: #f0f4f8; padding: 5px 10px; margin: 0 5px 5px 0; border-radius: 3px; }
    .summary { margin-bottom: 30px; }
  </style>
</head>
<body>
  <div class="header">
    {{if .PhotoURL}}<img class="profile-img" src="{{.PhotoURL}}" alt="{{.FullName}}">{{end}}
    <h1>{{.FullName}}</h1>
    <div class="contact-info">
      <p>Email: {{.Email}} | Phone: {{.Phone}}</p>
      <p>Address: {{.Address}}</p>
    </div>
  </div>

  <div class="summary">
    <h2 class="section-title">Professional Summary</h2>
    <p>{{.Summary}}</p>
  </div>

  {{if .WorkExperience}}
  <div class="section">
    <h2 class="section-title">Work Experience</h2>
    {{range .WorkExperience}}
    <div class="section-item">
      <h3>{{.Position}} at {{.Company}}</h3>
      <p class="date">{{.StartDate}} - {{if .Current}}Present{{else}}{{.EndDate}}{{end}}</p>
      <p>{{.Description}}</p>
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Education}}
  <div class="section">
    <h2 class="section-title">Education</h2>
    {{range .Education}}
    <div class="section-item">
      <h3>{{.Degree}} in {{.Field}}</h3>
      <p>{{.Institution}}</p>
      <p class="date">{{.StartDate}} - {{if .Current}}Present{{else}}{{.EndDate}}{{end}}</p>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .Skills}}
  <div class="section">
    <h2 class="section-title">Skills</h2>
    {{range .Skills}}<span class="skill-tag">{{.}}</span>{{end}}
  </div>
  {{end}}

  {{if .Certifications}}
  <div class="section">
    <h2 class="section-title">Certifications</h2>
    {{range .Certifications}}
    <div class="section-item">
      <h3>{{.Name}}</h3>
      <p>{{.Issuer}}</p>
      <p class="date">{{.Date}}</p>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}

  {{if .References}}
  <div class="section">
    <h2 class="section-title">References</h2>
    {{range .References}}
    <div class="section-item">
      <h3>{{.Name}}</h3>
      <p>{{.Position}} at {{.Company}}</p>
      <p>Email: {{.Email}}</p>
      {{if .Phone}}<p>Phone: {{.Phone}}</p>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</body>
</html>
`))

// RenderHTML produces the printable HTML document for a CV.
func RenderHTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := exportTmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render cv %s: %w", doc.ID, err)
	}
	return buf.Bytes(), nil
}
