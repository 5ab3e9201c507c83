package proc

// Ancestry returns the parent chain starting at pid: index 0 is the
// process itself, each later entry the parent of the one before it.
//
// The chain ends at a process without a parent, at a self-parented root,
// on a repeated pid, or at the first parent that cannot be read. A
// partial chain is a valid result; only the initial lookup can fail.
func Ancestry(src Source, pid int) ([]Process, error) {
	p, err := src.Get(pid)
	if err != nil {
		return nil, err
	}

	chain := []Process{p}
	seen := map[int]bool{p.PID: true}
	for {
		cur := chain[len(chain)-1]
		if cur.PPID <= 0 || cur.PPID == cur.PID || seen[cur.PPID] {
			return chain, nil
		}
		parent, err := src.Get(cur.PPID)
		if err != nil {
			// Parent vanished or is unreadable; the chain so far stands.
			return chain, nil
		}
		seen[parent.PID] = true
		chain = append(chain, parent)
	}
}
