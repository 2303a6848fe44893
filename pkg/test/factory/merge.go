package factory

import "maps"

// merge folds defaults and every override into one map; fabricator only
// applies the first map handed to Build.
func merge(defaults map[string]any, overrides []map[string]any) map[string]any {
	merged := maps.Clone(defaults)

	for _, data := range overrides {
		maps.Copy(merged, data)
	}

	return merged
}
