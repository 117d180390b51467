package reader

import (
	"fmt"

	"github.com/joshuapare/trophykit/internal/format"
	"github.com/joshuapare/trophykit/pkg/types"
)

func diagUnknownTable(slot uint64, th format.TableHeader) types.Diagnostic {
	return types.Diagnostic{
		Severity:  types.SevInfo,
		Category:  types.DiagStructure,
		Offset:    slot,
		Structure: "table",
		Issue:     types.IssueUnknownTable,
		Expected:  []uint32{format.TableTypeGrade, format.TableTypeUnlock},
		Actual:    th.Type,
	}
}

func diagTableFailed(slot uint64, th format.TableHeader, err error) types.Diagnostic {
	return types.Diagnostic{
		Severity:  types.SevError,
		Category:  types.DiagStructure,
		Offset:    slot,
		Structure: "table",
		Issue:     types.IssueTableFailed,
		Expected:  fmt.Sprintf("%d entries of %d bytes at 0x%X", th.EntryCount, th.EntrySize, th.Offset),
		Actual:    err.Error(),
	}
}

func diagDuplicate(structure string, id uint32) types.Diagnostic {
	return types.Diagnostic{
		Severity:  types.SevWarning,
		Category:  types.DiagData,
		Structure: structure,
		Issue:     types.IssueDuplicateRecord,
	}.ForTrophy(id)
}
