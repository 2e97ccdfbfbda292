package server

import (
	"html/template"

	"github.com/matzehuels/rbver/pkg/catalog"
)

type pageData struct {
	Families  []catalog.Family
	SourceURL string
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Ruby Versions</title>
</head>
<body>
<h1>Ruby Versions</h1>
{{- range .Families}}
<section>
  <h2>{{.Name}}</h2>
  <ul>
{{- range .Versions}}
    <li>{{.}}</li>
{{- end}}
  </ul>
</section>
{{- end}}
<hr />
<footer><p>Source code is <a href="{{.SourceURL}}" target="_blank">here</a></p></footer>
</body>
</html>
`))
