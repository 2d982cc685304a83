package domain

import "encoding/json"

// Recommendations 兼容两种后端格式: 单个字符串或字符串数组.
type Recommendations []string

func (r *Recommendations) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*r = Recommendations{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = Recommendations(many)
	return nil
}

func (r Recommendations) MarshalJSON() ([]byte, error) {
	// Preserve the scalar form when there is exactly one entry, matching
	// what the analysis backend emits for single-recommendation results.
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}
