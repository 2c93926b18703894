package core

import "container-os/internal/types"

// BumpRelease advances the patch component of doc.Version when the
// reconciliation changed anything. It is never applied otherwise.
func BumpRelease(doc types.TargetsDocument, result types.ReconcileResult) (types.TargetsDocument, types.ReconcileResult, error) {
	if !result.Changed {
		return doc, result, nil
	}
	bumped, err := BumpVersion(doc)
	if err != nil {
		return doc, result, err
	}
	result.Bumped = true
	result.ReleaseVersion = bumped.Version
	return bumped, result, nil
}

// BumpVersion advances the patch component of doc.Version unconditionally.
func BumpVersion(doc types.TargetsDocument) (types.TargetsDocument, error) {
	current, err := types.ParseReleaseVersion(doc.Version)
	if err != nil {
		return doc, err
	}
	doc.Version = current.BumpPatch().String()
	return doc, nil
}
