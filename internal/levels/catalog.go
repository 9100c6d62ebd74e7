// Package levels holds the fixed catalog of organizational responsibility
// levels. The catalog order is load-bearing: the classifier's output is an
// index into this sequence, ordered from the narrowest scope (Individual
// Contributor) to the widest (Chief Officer).
package levels

import (
	"log/slog"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
)

// Level is one entry in the responsibility level catalog.
type Level struct {
	// Name is the label shown to users, e.g. "Senior Manager / Associate Director".
	Name string
	// Description is the canonical narrative for the level.
	Description string
	// NarrativeV1 and NarrativeV2 are alternate framings of the same level.
	// V1 is the legacy wording, V2 the current one.
	NarrativeV1 string
	NarrativeV2 string
}

var ErrUnknownLevel = errors.NewSentinel("unknown responsibility level")

// Count is the number of levels in the catalog.
const Count = 10

var catalog = [Count]Level{
	{
		Name:        "Individual Contributor",
		Description: "Delivers work through personal expertise without formal authority over others. Success is measured by the quality and reliability of one's own output and by collaboration within the immediate team.",
		NarrativeV1: "You contribute as a hands-on specialist. Your influence comes from craft and dependability rather than positional authority.",
		NarrativeV2: "You own your work end to end and shape outcomes through expertise, initiative, and the trust of your peers.",
	},
	{
		Name:        "Team Lead",
		Description: "Guides the day-to-day work of a small group while remaining hands-on. Coordinates tasks, unblocks peers, and represents the team to its immediate manager without holding formal people responsibility.",
		NarrativeV1: "You are the first point of coordination for a small team, balancing your own deliverables with keeping the group on track.",
		NarrativeV2: "You lead from within the work: setting the pace, clearing obstacles, and modeling standards for a handful of colleagues.",
	},
	{
		Name:        "Supervisor",
		Description: "Holds first-line formal responsibility for a small team's output, schedules, and basic performance conversations. Decisions are operational and bounded by established procedures.",
		NarrativeV1: "You carry first-line accountability: assigning work, tracking completion, and handling routine people matters.",
		NarrativeV2: "You translate plans into daily execution for your team and are the first escalation point when work or people issues arise.",
	},
	{
		Name:        "Manager",
		Description: "Owns the performance and development of a team, including hiring, coaching, and resource decisions within a defined function. Balances near-term delivery with building team capability.",
		NarrativeV1: "You are accountable for a team's results and growth, making the staffing and priority calls that shape its quarter.",
		NarrativeV2: "You run a team as a system: hiring, developing, and organizing people so the function delivers without your constant involvement.",
	},
	{
		Name:        "Senior Manager / Associate Director",
		Description: "Leads managers or a large team across related workstreams. Shapes tactical plans for the function, manages its budget, and coordinates across departments to deliver medium-term commitments.",
		NarrativeV1: "You manage through other leads, translating departmental strategy into coordinated plans across several workstreams.",
		NarrativeV2: "You operate one level removed from the work, building leaders underneath you and aligning adjacent teams on shared goals.",
	},
	{
		Name:        "Director",
		Description: "Owns a department or major program, including its budget, structure, and leadership bench. Converts organizational strategy into multi-quarter plans and is accountable for cross-functional outcomes.",
		NarrativeV1: "You are accountable for a whole department: its people, spend, and results over a multi-quarter horizon.",
		NarrativeV2: "You set direction for a significant slice of the organization and develop the managers who carry it out.",
	},
	{
		Name:        "Senior Director / VP",
		Description: "Leads multiple departments or a business area. Balances competing departmental priorities, shapes organizational design, and participates in setting company-level strategy.",
		NarrativeV1: "You lead leaders of departments, arbitrating priorities between them and connecting their plans to company strategy.",
		NarrativeV2: "You own a business area's trajectory, shaping both its organization and its multi-year direction.",
	},
	{
		Name:        "Senior Vice President",
		Description: "Directs a major division spanning several business areas. Accountable for division-level strategy, significant budget authority, and the leadership pipeline across the division.",
		NarrativeV1: "You run a division: several business areas report up to you and your decisions move significant budget and headcount.",
		NarrativeV2: "You carry division-wide accountability, translating the executive agenda into strategy for thousands of hours of work.",
	},
	{
		Name:        "Executive Vice President",
		Description: "Sits on the executive team with accountability for a core pillar of the company. Shapes enterprise strategy, allocates resources across divisions, and represents the pillar to the board.",
		NarrativeV1: "You are accountable for one of the company's pillars and share ownership of enterprise-wide decisions.",
		NarrativeV2: "You operate at the enterprise level: allocating across divisions, shaping strategy, and answering to the board for a pillar of the business.",
	},
	{
		Name:        "Chief Officer",
		Description: "Holds ultimate accountability for a company-wide function or the company itself. Sets enterprise strategy, represents the organization externally, and is accountable to the board and shareholders.",
		NarrativeV1: "You hold ultimate accountability for an enterprise function, setting its direction and answering for it externally.",
		NarrativeV2: "You lead at the very top of the organization, where every decision is strategic and company-wide in scope.",
	},
}

// Catalog returns the ordered list of levels. Callers must treat the result
// as read-only.
func Catalog() []Level {
	return catalog[:]
}

// ByIndex returns the level at the given catalog position.
func ByIndex(index int) (Level, error) {
	if index < 0 || index >= Count {
		return Level{}, errors.Wrap(ErrUnknownLevel, "index out of range", slog.Int("index", index))
	}
	return catalog[index], nil
}

// ByName returns the level with the given name and its catalog index.
func ByName(name string) (Level, int, error) {
	for i, level := range catalog {
		if level.Name == name {
			return level, i, nil
		}
	}
	return Level{}, -1, errors.Wrap(ErrUnknownLevel, "name not in catalog", slog.String("name", name))
}
