package webhook

import "go_5_algo_keep/internal/model"

// ParseCommits は commits から added/modified のパスを重複なく集める。
// 一度でも added に現れたパスは Added に入る
func ParseCommits(commits []model.PushCommit) model.ChangeSet {
	cs := model.ChangeSet{
		Paths: []string{},
		Added: map[string]struct{}{},
	}
	seen := map[string]struct{}{}
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		cs.Paths = append(cs.Paths, path)
	}

	for _, c := range commits {
		for _, p := range c.Added {
			add(p)
			cs.Added[p] = struct{}{}
		}
		for _, p := range c.Modified {
			add(p)
		}
	}
	return cs
}
