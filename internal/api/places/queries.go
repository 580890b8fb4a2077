package places

import "github.com/FACorreiaa/go-route-planner/internal/tags"

// MaxQueries caps the provider searches issued for one plan.
const MaxQueries = 12

// SearchSpec is one provider search: a free-text query and an optional CSV
// list of 2GIS item types.
type SearchSpec struct {
	Query string
	Types string
}

var defaultSpec = SearchSpec{Query: "достопримечательности", Types: "attraction,adm_div.place"}

var tagSpecs = map[tags.Tag][]SearchSpec{
	tags.Museum:       {{"музей", "branch,attraction"}, {"выставка", "branch"}},
	tags.Art:          {{"галерея", "branch,attraction"}, {"театр", "branch"}},
	tags.Gallery:      {{"галерея", "branch,attraction"}},
	tags.History:      {{"исторический музей", "branch,attraction"}, {"памятник", "attraction"}},
	tags.Architecture: {{"архитектура", "attraction"}, {"особняк", "branch,building"}},
	tags.Park:         {{"парк", "adm_div.place,attraction"}, {"сквер", "adm_div.place"}},
	tags.Nature:       {{"парк", "adm_div.place,attraction"}, {"ботанический сад", "attraction"}},
	tags.Walk:         {{"набережная", "adm_div.place,attraction"}, {"пешеходная улица", "adm_div.place"}},
	tags.Embankment:   {{"набережная", "adm_div.place,attraction"}},
	tags.Waterfront:   {{"набережная", "adm_div.place,attraction"}},
	tags.Viewpoint:    {{"обзорная площадка", "attraction"}},
	tags.Food:         {{"ресторан", "branch"}, {"столовая", "branch"}},
	tags.Coffee:       {{"кофейня", "branch"}, {"кафе", "branch"}},
	tags.Family:       {{"детский центр", "branch"}, {"семейные развлечения", "adm_div.place,attraction"}},
	tags.Sport:        {{"спорт", "branch,adm_div.place"}},
	tags.POI:          {defaultSpec},
}

// PlanQueries expands canonical tags into a de-duplicated list of provider
// searches, at most MaxQueries long. No tags yields the default search.
func PlanQueries(requested tags.Set) []SearchSpec {
	if len(requested) == 0 {
		return []SearchSpec{defaultSpec}
	}

	seen := make(map[SearchSpec]struct{})
	specs := make([]SearchSpec, 0, len(requested))
	for _, t := range requested {
		bucket, ok := tagSpecs[t]
		if !ok {
			bucket = []SearchSpec{{Query: string(t)}}
		}
		for _, s := range bucket {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			specs = append(specs, s)
		}
	}
	if len(specs) > MaxQueries {
		specs = specs[:MaxQueries]
	}
	return specs
}
