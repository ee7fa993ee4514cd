package handlers

import (
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

type recordView struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
	Summary   string    `json:"summary"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type actionView struct {
	Index      int           `json:"index"`
	Label      string        `json:"label"`
	Icon       string        `json:"icon"`
	EffectType string        `json:"effect_type"`
	Capability string        `json:"capability,omitempty"`
	Effect     domain.Effect `json:"effect"`
}

type resolvedView struct {
	recordView
	Rule    string       `json:"rule"`
	Actions []actionView `json:"actions"`
}

func toRecordView(r *domain.Record) recordView {
	return recordView{
		ID:        r.ID,
		Kind:      string(r.Kind),
		Payload:   r.Payload,
		Summary:   domain.SummarizeRecord(r),
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
	}
}

func toActionViews(actions []domain.ActionDescriptor) []actionView {
	views := make([]actionView, len(actions))
	for i, a := range actions {
		views[i] = actionView{
			Index:      i,
			Label:      a.Label,
			Icon:       a.Icon,
			EffectType: string(a.Effect.Type()),
			Capability: string(a.Effect.Capability()),
			Effect:     a.Effect,
		}
	}
	return views
}

func toResolvedView(r *domain.Record) resolvedView {
	return resolvedView{
		recordView: toRecordView(r),
		Rule:       domain.MatchedRule(r.Kind, r.Payload),
		Actions:    toActionViews(domain.ResolveActions(r)),
	}
}
