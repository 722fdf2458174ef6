package render

import (
	"fmt"
	"html/template"
	"strings"
)

// scheduleTmpl renders a View as the table fragment the site injects into
// its schedule container.
var scheduleTmpl = template.Must(template.New("schedule").Parse(`{{- if .Empty -}}
<p class="no-games">No games found matching your criteria.</p>
{{- else -}}
{{- range .Weeks}}
<section class="schedule-week{{if .Completed}} schedule-week--completed{{end}}">
{{- if .Label}}
<h2 class="schedule-week-header">{{.Label}}{{if .Completed}} <span class="week-done">(completed)</span>{{end}}</h2>
{{- end}}
{{- range .Dates}}
<h3 class="schedule-date-header">{{.Label}}</h3>
<div class="table-responsive"><table class="schedule-table">
<thead><tr><th>Time</th><th>Division</th><th>Home</th><th>Away</th><th>Location</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr>
<td data-label="Time">{{.TimeLabel}}</td>
<td data-label="Division"><span class="badge badge--{{.DivisionCode}}">{{.Division}}</span></td>
<td data-label="Home">{{.HomeTeam}}</td>
<td data-label="Away">{{.AwayTeam}}</td>
<td data-label="Location"><div class="location-content">{{.Location}}{{if .LastGame}}<br><span class="game-note">Last Game - Please Help with Field Tear-Down</span>{{end}}</div></td>
</tr>
{{- end}}
</tbody>
</table></div>
{{- end}}
</section>
{{- end}}
{{- end}}`))

// HTML renders a View into the markup fragment the page inserts.
func (r *Renderer) HTML(view View) (string, error) {
	var b strings.Builder
	if err := scheduleTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render schedule: %w", err)
	}
	return b.String(), nil
}
