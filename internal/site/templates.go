package site

import "html/template"

var pageTemplates = template.Must(template.New("site").Parse(`
{{define "header"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.AssetPrefix}}assets/site.css">
</head>
<body>
<h1>{{.Title}}</h1>
{{end}}

{{define "footer"}}</body>
</html>
{{end}}

{{define "index"}}{{template "header" .}}
<h2>Target Families</h2>
<ul>
{{range .Families}}<li><a href="families/{{.File}}">{{.Name}}</a> ({{.TargetCount}} targets)</li>
{{end}}</ul>
<h2>Reports</h2>
<ul>
<li><a href="features/index.html">Feature index</a></li>
<li><a href="matrix.html">Test result matrix</a></li>
</ul>
{{template "footer" .}}{{end}}

{{define "family"}}{{template "header" .}}
<p><a href="../index.html">Back to index ^</a></p>
<h2>Feature Matrix</h2>
<table>
<tr><th>Target</th>{{range .Features}}<th><a href="../features/{{.File}}">{{.FriendlyName}}</a></th>{{end}}</tr>
{{range .Rows}}<tr><td>{{.Target}}</td>{{range .Cells}}{{if .}}<td class="feature-yes">yes</td>{{else}}<td class="feature-no"></td>{{end}}{{end}}</tr>
{{end}}</table>
<h2>Memory Banks</h2>
<table>
<tr><th>Target</th><th>RAM Banks</th><th>Flash Banks</th></tr>
{{range .Memories}}<tr><td>{{.Target}}</td><td><ul>{{range .RAM}}<li>{{.}}</li>{{end}}</ul></td><td><ul>{{range .Flash}}<li>{{.}}</li>{{end}}</ul></td></tr>
{{end}}</table>
<h2>Inheritance Graph</h2>
<p>Graphviz source: <a href="assets/{{.DotFile}}"><code>{{.DotFile}}</code></a></p>
{{template "footer" .}}{{end}}

{{define "features_index"}}{{template "header" .}}
<p><a href="../index.html">Back to index ^</a></p>
<table>
<tr><th>Feature</th><th>Internal Name</th><th>Description</th></tr>
{{range .Features}}<tr><td><a href="{{.File}}">{{.FriendlyName}}</a></td><td><code>{{.Define}}</code></td><td>{{.Description}}</td></tr>
{{end}}</table>
{{template "footer" .}}{{end}}

{{define "feature"}}{{template "header" .}}
<p><a href="index.html">Back to feature index ^</a></p>
<p><strong>Internal name:</strong> <code>{{.Feature.Define}}</code></p>
<p><strong>Description:</strong> {{.Feature.Description}}</p>
<h2>Target Families With This Feature</h2>
<table>
<tr><th>Family</th><th>Targets</th></tr>
{{range .Rows}}<tr><td><a href="../families/{{.FamilyFile}}">{{.Family}}</a></td><td>{{.Targets}}</td></tr>
{{end}}</table>
{{template "footer" .}}{{end}}

{{define "matrix"}}{{template "header" .}}
<p><a href="index.html">Back to index ^</a></p>
<table>
<tr><th>Target</th>{{range .Cases}}<th class="case-header">{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td{{if .Orphaned}} class="orphaned"{{end}}>{{.Target}}{{if .Orphaned}} (not in catalog){{end}}</td>
{{range .Cells}}{{if .HasData}}<td class="{{.Class}}"><a href="details/{{.DetailFile}}">{{.Label}}</a></td>{{else}}<td class="nodata">no data</td>{{end}}{{end}}</tr>
{{end}}</table>
{{template "footer" .}}{{end}}

{{define "detail"}}{{template "header" .}}
<p><a href="../../matrix.html">Back to test matrix ^</a></p>
<p><strong>Target:</strong> {{.Target}}</p>
<p><strong>Test case:</strong> {{.Case}}</p>
<p><strong>Final outcome:</strong> <span class="{{.FinalClass}}">{{.Final}}</span>{{if .FinalReason}} ({{.FinalReason}}){{end}}</p>
<h2>Recorded Attempts</h2>
<table>
<tr><th>Attempt</th><th>Outcome</th><th>Reason</th><th>Batch</th></tr>
{{range .Attempts}}<tr><td>{{.Index}}</td><td class="{{.Class}}">{{.Outcome}}{{if .Placeholder}} (placeholder){{end}}</td><td>{{.Reason}}</td><td><code>{{.Batch}}</code></td></tr>
{{end}}</table>
{{template "footer" .}}{{end}}
`))

// stylesheet is the shared static asset; the outcome marker classes mirror
// the matrix cell classes.
const stylesheet = `body {
	margin: 30px;
	font-family: sans-serif;
}
table {
	border-collapse: collapse;
}
th, td {
	border: 1px solid #999;
	padding: 4px 8px;
}
th.case-header {
	writing-mode: vertical-lr;
}
.outcome-pass {
	background-color: lightgreen;
}
.outcome-fail {
	background-color: lightpink;
}
.outcome-skipped {
	background-color: lightgray;
}
.outcome-error {
	background-color: orange;
}
td.nodata {
	background-color: white;
	color: #999;
	font-style: italic;
}
td.orphaned {
	background-color: #fdf0d0;
}
td.feature-yes {
	background-color: lightgreen;
	text-align: center;
}
`
