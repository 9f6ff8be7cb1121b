package ui

import (
	"fmt"

	"lifeworld/internal/core"
	"lifeworld/internal/world"
)

// StatusLines formats world telemetry for the footer panel.
func StatusLines(st world.Status) []string {
	fps := "fps = ---.--"
	if st.State != world.Idle && st.CalcTime > 0 {
		fps = fmt.Sprintf("fps = %6.2f", st.FPS)
	}
	return []string{
		fmt.Sprintf("%s  [%s]", st.Algorithm, st.State),
		fmt.Sprintf("gen = %d  group = %d", st.Generation, st.Group),
		fmt.Sprintf("live = %d", st.Stats.Live),
		fmt.Sprintf("born = %d  died = %d", st.Stats.Births, st.Stats.Deaths),
		fps,
	}
}

// ParameterLines lists the tunables of alg when it exposes them.
func ParameterLines(alg core.Algorithm) []string {
	provider, ok := alg.(core.ParameterProvider)
	if !ok {
		return nil
	}
	var lines []string
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("%s = %s", p.Label, p.Value))
		}
	}
	return lines
}
