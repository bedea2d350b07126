// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

// OverlapSimilarity returns |A ∩ B| / max(|A|, |B|) over the key sets of two
// label count mappings. Counts are ignored; only key presence matters.
// The result is 0 when either mapping is empty or they share no keys.
//
// Neighbor and diversity thresholds are calibrated against this overlap
// coefficient, so it must not be swapped for cosine similarity.
func OverlapSimilarity(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	shared := 0
	for k := range small {
		if _, ok := large[k]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	return float64(shared) / float64(len(large))
}
