package heuristics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taskforge-hq/taskforge-backend/internal/suggestions/domain"
)

// RankAssignees scores every roster member against the task and returns
// the top candidates, best first. Scores are clamped to [0, 100].
func (e *Engine) RankAssignees(in domain.AssigneeInput) domain.AssigneeRankingResult {
	r := e.rules.Assignee

	text := combinedText(in.Title, in.Description)

	ranked := make([]domain.RankedCandidate, 0, len(in.Roster))
	for _, cand := range in.Roster {
		score := r.BaseScore
		reasons := make([]string, 0, 4)

		score -= cand.ActiveTasks * r.WorkloadPenalty
		reasons = append(reasons, fmt.Sprintf("%d active tasks", cand.ActiveTasks))

		exp := cand.TotalTasks * r.ExperiencePerTask
		if exp > r.ExperienceCap {
			exp = r.ExperienceCap
		}
		score += exp
		reasons = append(reasons, fmt.Sprintf("%d tasks of project experience", cand.TotalTasks))

		switch cand.Role {
		case domain.RoleOwner:
			score += r.OwnerBonus
			reasons = append(reasons, "project owner")
		case domain.RoleAdmin:
			score += r.AdminBonus
			reasons = append(reasons, "project admin")
		}

		// Task text and display name are checked independently, so a
		// skill appearing in both counts twice.
		if len(in.RequiredSkills) > 0 {
			matched := make([]string, 0, len(in.RequiredSkills))
			name := strings.ToLower(cand.DisplayName)
			for _, skill := range in.RequiredSkills {
				s := strings.ToLower(skill)
				if strings.Contains(text, s) {
					score += r.SkillMatchBonus
					matched = append(matched, skill)
				}
				if strings.Contains(name, s) {
					score += r.SkillMatchBonus
					matched = append(matched, skill)
				}
			}
			if len(matched) > 0 {
				reasons = append(reasons, "matched skills: "+strings.Join(matched, ", "))
			}
		}

		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		ranked = append(ranked, domain.RankedCandidate{
			UserID:         cand.UserID,
			DisplayName:    cand.DisplayName,
			Score:          score,
			Confidence:     r.Confidence,
			WorkloadStatus: workloadStatus(cand.ActiveTasks, r),
			Reasons:        reasons,
		})
	}

	// Stable sort keeps roster order on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > r.TopN {
		ranked = ranked[:r.TopN]
	}

	return domain.AssigneeRankingResult{
		Candidates: ranked,
		Confidence: r.Confidence,
	}
}

func workloadStatus(activeTasks int, r AssigneeRules) string {
	switch {
	case activeTasks < r.LightWorkloadBelow:
		return "light"
	case activeTasks < r.ModerateBelow:
		return "moderate"
	default:
		return "heavy"
	}
}
