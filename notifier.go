package propedit

// notifyMutation classifies a completed mutation and routes it to the
// change sink. A mutation is structural when it touches the synthetic
// ordinal or a field that participates in generated-identifier
// derivation; those need full dependent regeneration, everything else
// gets the lighter mark-changed pass. Either way any live views of the
// owning document are asked to refresh.
func (e *Engine) notifyMutation(tgt *ResolvedTarget) {
	if e.isStructural(tgt) {
		e.sink.StructuralChanged(tgt.Entity)
	} else {
		e.sink.ValueChanged(tgt.Entity)
	}
	e.sink.RefreshViews(tgt.Entity)
}

// isStructural reports whether the mutation changed the existence or
// identity of something relevant to generated identifiers or ordinal
// arrangement.
func (e *Engine) isStructural(tgt *ResolvedTarget) bool {
	if tgt.Synthetic == SyntheticChildOrder {
		return true
	}
	return tgt.Field != nil && tgt.Field.GenerationKey
}
