package report

import (
	"html/template"
	"strings"
)

var reportTemplate = template.Must(template.New("student-report").Funcs(template.FuncMap{
	"join": func(parts []string) string { return strings.Join(parts, ", ") },
}).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Student Performance Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; background: #f5f6fa; color: #2c3e50; }
  .container { max-width: 1100px; margin: 0 auto; padding: 24px; }
  h1 { margin-bottom: 4px; }
  .meta { color: #7f8c8d; font-size: 0.85em; margin-bottom: 24px; }
  .card { background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 16px 20px; margin-bottom: 20px; }
  .card h2 { margin-top: 0; font-size: 1.2em; border-bottom: 1px solid #ecf0f1; padding-bottom: 8px; }
  table { border-collapse: collapse; width: 100%; font-size: 0.9em; }
  th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #ecf0f1; }
  th { background: #f8f9fa; }
  .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; }
  .stat { background: #f8f9fa; border-radius: 6px; padding: 10px 14px; }
  .stat .value { font-size: 1.4em; font-weight: 600; }
  .stat .label { color: #7f8c8d; font-size: 0.8em; }
  .risk { color: #e74c3c; }
  .ok { color: #27ae60; }
  img.chart { max-width: 100%; border: 1px solid #ecf0f1; border-radius: 6px; margin: 8px 0; }
</style>
</head>
<body>
<div class="container">
  <h1>Student Performance Report</h1>
  <div class="meta">Run {{.RunID}} &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04 UTC"}}</div>

  <div class="card">
    <h2>Summary</h2>
    <div class="grid">
      <div class="stat"><div class="value">{{.Summary.TotalStudents}}</div><div class="label">Students</div></div>
      <div class="stat"><div class="value risk">{{.Summary.AtRiskCount}} ({{.Summary.AtRiskPercentage}}%)</div><div class="label">At risk</div></div>
      <div class="stat"><div class="value">{{.Summary.AvgFinalGrade}}</div><div class="label">Avg final grade</div></div>
      <div class="stat"><div class="value">{{.Summary.AvgAttendance}}</div><div class="label">Avg attendance</div></div>
      <div class="stat"><div class="value">{{.Summary.AvgAssignmentScore}}</div><div class="label">Avg assignment score</div></div>
      <div class="stat"><div class="value">{{.Summary.AvgQuizScore}}</div><div class="label">Avg quiz score</div></div>
      <div class="stat"><div class="value">{{.Summary.TotalForumPosts}}</div><div class="label">Forum posts</div></div>
      <div class="stat"><div class="value">{{.Summary.AvgTimeOnPlatform}}</div><div class="label">Avg hours/week</div></div>
    </div>
  </div>

  <div class="card">
    <h2>Performance Distribution</h2>
    <table>
      <tr><th>Excellent (&ge;90)</th><th>Good (75-89)</th><th>Satisfactory (60-74)</th><th>Poor (&lt;60)</th><th>Mean</th><th>Median</th><th>Std</th><th>Min</th><th>Max</th></tr>
      <tr>
        <td>{{.Distribution.Excellent}}</td><td>{{.Distribution.Good}}</td><td>{{.Distribution.Satisfactory}}</td><td>{{.Distribution.Poor}}</td>
        <td>{{.Distribution.Mean}}</td><td>{{.Distribution.Median}}</td><td>{{.Distribution.Std}}</td><td>{{.Distribution.Min}}</td><td>{{.Distribution.Max}}</td>
      </tr>
    </table>
  </div>

  <div class="card">
    <h2>Engagement</h2>
    <div class="grid">
      <div class="stat"><div class="value">{{.Engagement.AvgForumPosts}}</div><div class="label">Avg forum posts</div></div>
      <div class="stat"><div class="value">{{.Engagement.MedianForumPosts}}</div><div class="label">Median forum posts</div></div>
      <div class="stat"><div class="value ok">{{.Engagement.HighlyEngaged}}</div><div class="label">Highly engaged (&gt;10 posts)</div></div>
      <div class="stat"><div class="value risk">{{.Engagement.LowEngagement}}</div><div class="label">Low engagement (&lt;3 posts)</div></div>
      <div class="stat"><div class="value">{{.Engagement.AvgPlatformTime}}</div><div class="label">Avg hours/week</div></div>
    </div>
  </div>

  <div class="card">
    <h2>Feature Correlations with Final Grade</h2>
    <table>
      <tr><th>Feature</th><th>Correlation</th></tr>
      {{range .Correlations}}<tr><td>{{.Feature}}</td><td>{{.R}}</td></tr>
      {{end}}
    </table>
  </div>

  <div class="card">
    <h2>At-Risk Students ({{len .AtRisk}})</h2>
    {{if .AtRisk}}
    <table>
      <tr><th>Student</th><th>Name</th><th>Final Grade</th><th>Attendance</th><th>Risk Factors</th></tr>
      {{range .AtRisk}}<tr><td>{{.StudentID}}</td><td>{{.Name}}</td><td class="risk">{{.FinalGrade}}</td><td>{{.AttendanceRate}}</td><td>{{join .Factors}}</td></tr>
      {{end}}
    </table>
    {{else}}<p class="ok">No students currently flagged.</p>{{end}}
  </div>

  <div class="card">
    <h2>Top Performers</h2>
    <table>
      <tr><th>Student</th><th>Name</th><th>Final Grade</th><th>Attendance</th><th>Avg Assignment Score</th></tr>
      {{range .TopPerformers}}<tr><td>{{.StudentID}}</td><td>{{.Name}}</td><td class="ok">{{.FinalGrade}}</td><td>{{.AttendanceRate}}</td><td>{{.AvgAssignmentScore}}</td></tr>
      {{end}}
    </table>
  </div>

  {{if .Metrics}}
  <div class="card">
    <h2>Risk Prediction Model</h2>
    <div class="grid">
      <div class="stat"><div class="value">{{.Metrics.Accuracy}}</div><div class="label">Accuracy</div></div>
      <div class="stat"><div class="value">{{.Metrics.Precision}}</div><div class="label">Precision</div></div>
      <div class="stat"><div class="value">{{.Metrics.Recall}}</div><div class="label">Recall</div></div>
      <div class="stat"><div class="value">{{.Metrics.F1}}</div><div class="label">F1</div></div>
      <div class="stat"><div class="value">{{.Metrics.TrainSize}} / {{.Metrics.TestSize}}</div><div class="label">Train / test split</div></div>
    </div>
    {{if .Importance}}
    <h2>Feature Importance</h2>
    <table>
      <tr><th>Feature</th><th>Importance</th></tr>
      {{range .Importance}}<tr><td>{{.Feature}}</td><td>{{.Score}}</td></tr>
      {{end}}
    </table>
    {{end}}
  </div>
  {{end}}

  {{if .Drift}}
  <div class="card">
    <h2>Week-over-Week Risk Drift</h2>
    <p><span class="risk">{{len .Drift.NewlyAtRisk}} newly at risk</span> &middot; <span class="ok">{{len .Drift.Recovered}} recovered</span> &middot; {{len .Drift.Added}} added &middot; {{len .Drift.Removed}} removed</p>
    {{if .Drift.NewlyAtRisk}}
    <table>
      <tr><th>Student</th><th>Name</th><th>Final Grade</th><th>Attendance</th></tr>
      {{range .Drift.NewlyAtRisk}}<tr><td>{{.StudentID}}</td><td>{{.Name}}</td><td class="risk">{{.FinalGrade}}</td><td>{{.AttendanceRate}}</td></tr>
      {{end}}
    </table>
    {{end}}
  </div>
  {{end}}

  {{if .Charts}}
  <div class="card">
    <h2>Charts</h2>
    {{range .Charts}}<img class="chart" src="{{.}}" alt="{{.}}">
    {{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`
