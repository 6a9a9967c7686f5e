package orchestrator

// GetClassStatusMap returns a copy of the internal class status map.
// This is exported for testing purposes only.
func (o *Orchestrator) GetClassStatusMap() map[string]ClassStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()

	statusMap := make(map[string]ClassStatus, len(o.classStatus))
	for k, v := range o.classStatus {
		statusMap[k] = v
	}
	return statusMap
}
