package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mww/league_manager/db"
	"github.com/mww/league_manager/model"
	"github.com/sirupsen/logrus"
)

// InitiateDivisions fills divisions in the order the teams are given. The
// caller decides that order, nothing is randomized here.
func (c *controller) InitiateDivisions(ctx context.Context, teamNames []string, divisionSize int) ([]model.DivisionAssignment, error) {
	fields := logrus.Fields{"teams": len(teamNames), "division_size": divisionSize}

	if divisionSize <= 0 {
		return nil, c.fail("initiate_divisions", fields, model.InvalidArgument("division size must be positive, got %d", divisionSize))
	}
	if len(teamNames) == 0 {
		return nil, c.fail("initiate_divisions", fields, model.InvalidArgument("no teams to divide"))
	}

	seen := make(map[string]bool, len(teamNames))
	for _, name := range teamNames {
		if seen[name] {
			return nil, c.fail("initiate_divisions", fields, model.InvalidArgument("team '%s' is listed more than once", name))
		}
		seen[name] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range teamNames {
		if _, err := c.getTeam(ctx, model.CompetitionPrimary, name); err != nil {
			return nil, c.fail("initiate_divisions", fields, err)
		}
	}

	assignments := partitionDivisions(teamNames, divisionSize)
	if err := c.db.AssignDivisions(ctx, assignments); err != nil {
		if errors.Is(err, db.ErrTeamNotFound) {
			err = fmt.Errorf("a team was deleted while assigning divisions: %w", err)
		}
		return nil, c.fail("initiate_divisions", fields, err)
	}

	c.logger.WithFields(fields).WithField("divisions", len(assignments)).Info("divisions initiated")
	return assignments, nil
}

func (c *controller) InitiateSecondaryCompetition(ctx context.Context, divisions []string, quota, groupSize int) (*model.Qualification, error) {
	fields := logrus.Fields{"divisions": strings.Join(divisions, ","), "quota": quota, "group_size": groupSize}

	if quota <= 0 {
		return nil, c.fail("initiate_secondary", fields, model.InvalidArgument("qualification quota must be positive, got %d", quota))
	}
	if groupSize <= 0 {
		return nil, c.fail("initiate_secondary", fields, model.InvalidArgument("group size must be positive, got %d", groupSize))
	}
	if len(divisions) == 0 {
		return nil, c.fail("initiate_secondary", fields, model.InvalidArgument("at least one division must be named"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.clock.Now()

	q := &model.Qualification{
		Qualifiers: make(map[string][]model.Qualifier, len(divisions)),
	}
	pool := make([]string, 0, len(divisions)*quota)
	for _, d := range divisions {
		if _, ok := q.Qualifiers[d]; ok {
			return nil, c.fail("initiate_secondary", fields, model.InvalidArgument("division '%s' is listed more than once", d))
		}

		ranked, err := c.rankedStandings(ctx, model.CompetitionPrimary, d)
		if err != nil {
			return nil, c.fail("initiate_secondary", fields, err)
		}

		qualifiers := selectQualifiers(d, ranked, quota)
		q.Qualifiers[d] = qualifiers
		for _, qual := range qualifiers {
			pool = append(pool, qual.Standing.TeamName)
		}
	}

	// One shuffle over the whole pool so groups mix divisions.
	c.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	q.Groups = assignGroups(pool, groupSize)

	teams := make([]model.Team, 0, len(pool))
	for _, g := range q.Groups {
		for _, name := range g.Teams {
			t, err := c.getTeam(ctx, model.CompetitionPrimary, name)
			if err != nil {
				return nil, c.fail("initiate_secondary", fields, err)
			}
			t.Competition = model.CompetitionSecondary
			t.Division = g.Name
			teams = append(teams, *t)
		}
	}

	if err := c.db.ResetSecondaryCompetition(ctx, teams); err != nil {
		return nil, c.fail("initiate_secondary", fields, err)
	}

	c.logger.WithFields(fields).WithFields(logrus.Fields{
		"qualified": len(pool),
		"groups":    len(q.Groups),
		"took":      c.clock.Now().Sub(start).String(),
	}).Info("secondary competition initiated")
	return q, nil
}

// partitionDivisions splits teams into consecutive divisions of size, named
// Division 1, Division 2 and so on. The last division may be smaller.
func partitionDivisions(teams []string, size int) []model.DivisionAssignment {
	result := make([]model.DivisionAssignment, 0, (len(teams)+size-1)/size)
	for i := 0; i < len(teams); i += size {
		end := min(i+size, len(teams))
		result = append(result, model.DivisionAssignment{
			Division: fmt.Sprintf("Division %d", len(result)+1),
			Teams:    append([]string(nil), teams[i:end]...),
		})
	}
	return result
}

// selectQualifiers takes the first quota teams of ranked standings, or all of
// them when the division is smaller than the quota.
func selectQualifiers(division string, ranked []model.Standing, quota int) []model.Qualifier {
	n := min(quota, len(ranked))
	result := make([]model.Qualifier, 0, n)
	for _, s := range ranked[:n] {
		result = append(result, model.Qualifier{Division: division, Standing: s})
	}
	return result
}

// assignGroups cuts teams into consecutive groups of size. The last group may
// be smaller.
func assignGroups(teams []string, size int) []model.Group {
	groups := make([]model.Group, 0, (len(teams)+size-1)/size)
	for i := 0; i < len(teams); i += size {
		end := min(i+size, len(teams))
		groups = append(groups, model.Group{
			Name:  groupName(len(groups)),
			Teams: append([]string(nil), teams[i:end]...),
		})
	}
	return groups
}

// groupName returns Group A through Group Z, then Group AA, Group AB, ...
func groupName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return "Group " + string(b)
}
