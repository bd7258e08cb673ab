package chart

import "html/template"

const echartsAsset = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"asset": func() string { return echartsAsset },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{asset}}"></script>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 0 auto; padding: 16px; }
.card-container { display: flex; justify-content: space-between; margin-top: 20px; gap: 20px; }
.card { flex: 1; background-color: #f1f3f6; border-radius: 12px; padding: 20px; box-shadow: 0 2px 10px rgba(0,0,0,0.05); text-align: center; }
.card h3 { font-size: 1.2rem; color: #444; }
.card .icon { font-size: 2rem; }
.card .value { font-size: 1.8rem; font-weight: bold; margin: 10px 0; color: #0a58ca; }
.card .subtitle { font-size: 0.9rem; color: #777; }
.caption { color: #777; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>🔋 {{.Title}}</h1>
<p>{{.Inputs}}</p>
<h2>📊 Simulation Summary</h2>
<div class="card-container">
{{- range .Cards}}
  <div class="card">
    <div class="icon">{{.Icon}}</div>
    <h3>{{.Title}}</h3>
    <div class="value">{{.Value}}</div>
    <div class="subtitle">{{.Subtitle}}</div>
  </div>
{{- end}}
</div>
<h2>📉 Capacity Degradation Graph</h2>
{{.Element}}
{{.Script}}
<p class="caption">{{.Caption}}</p>
</body>
</html>
`))
