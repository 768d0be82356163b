/*
 * © 2025 Halcyon Labs Ltd.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package converter translates stored markers into the host editor's wire
// shapes. Marker positions are 1-based with an exclusive end column; the
// editor speaks 0-based LSP positions.
package converter

import (
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/halcyon-ide/marker-service/internal/lsp"
	"github.com/halcyon-ide/marker-service/internal/types"
	"github.com/halcyon-ide/marker-service/internal/uri"
)

func ToPosition(pos types.Position) sglsp.Position {
	return sglsp.Position{
		Line:      pos.Line - 1,
		Character: pos.Column - 1,
	}
}

func ToRange(r types.Range) sglsp.Range {
	return sglsp.Range{
		Start: ToPosition(r.Start),
		End:   ToPosition(r.End),
	}
}

func ToSeverity(severity types.Severity) lsp.DiagnosticSeverity {
	switch severity {
	case types.SeverityError:
		return lsp.DiagnosticsSeverityError
	case types.SeverityWarning:
		return lsp.DiagnosticsSeverityWarning
	case types.SeverityInfo:
		return lsp.DiagnosticsSeverityInformation
	case types.SeverityHint:
		return lsp.DiagnosticsSeverityHint
	default:
		// the editor renders unknown tiers as plain information
		return lsp.DiagnosticsSeverityInformation
	}
}

func ToDiagnostic(marker types.Marker) lsp.Diagnostic {
	diagnostic := lsp.Diagnostic{
		Range:    ToRange(marker.Range),
		Severity: ToSeverity(marker.Severity),
		Source:   marker.Owner.String(),
		Message:  marker.Message,
	}
	if marker.Code != nil {
		diagnostic.Code = marker.Code.Value
		if marker.Code.Href != "" {
			diagnostic.CodeDescription = &lsp.CodeDescription{Href: lsp.Uri(marker.Code.Href)}
		}
	} else if marker.Source != "" {
		// linters report their rule ID as the code
		diagnostic.Code = marker.Source
	}
	for _, tag := range marker.Tags {
		switch tag {
		case types.TagUnnecessary:
			diagnostic.Tags = append(diagnostic.Tags, lsp.DiagnosticTagUnnecessary)
		case types.TagDeprecated:
			diagnostic.Tags = append(diagnostic.Tags, lsp.DiagnosticTagDeprecated)
		}
	}
	for _, related := range marker.RelatedInformation {
		diagnostic.RelatedInformation = append(diagnostic.RelatedInformation, lsp.DiagnosticRelatedInformation{
			Location: lsp.Location{
				URI:   uri.ResourceToDocumentURI(related.Resource),
				Range: ToRange(related.Range),
			},
			Message: related.Message,
		})
	}
	return diagnostic
}

func ToDiagnostics(markers []types.Marker) []lsp.Diagnostic {
	diagnostics := make([]lsp.Diagnostic, 0, len(markers))
	for _, marker := range markers {
		diagnostics = append(diagnostics, ToDiagnostic(marker))
	}
	return diagnostics
}

// ToPublishDiagnosticsParams builds the editor payload for one document. An
// empty marker list produces an empty diagnostics array, which clears the
// document in the editor.
func ToPublishDiagnosticsParams(resource types.Resource, markers []types.Marker) lsp.PublishDiagnosticsParams {
	return lsp.PublishDiagnosticsParams{
		URI:         uri.ResourceToDocumentURI(resource),
		Diagnostics: ToDiagnostics(markers),
	}
}
