package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Manifest and flag problems
	CfgBadWindow       Code = 1001
	CfgMissingType     Code = 1002
	CfgBadTransform    Code = 1003
	CfgDuplicateTarget Code = 1004

	// Package loading
	LoadPackageError Code = 2001
	LoadNoPackage    Code = 2002
	LoadManyPackages Code = 2003

	// Member discovery
	InsInfo          Code = 3000
	InsTypeNotFound  Code = 3001
	InsNotInteger    Code = 3002
	InsNoMembers     Code = 3003
	InsOutsideWindow Code = 3004
	InsAlias         Code = 3005
	InsNotNamed      Code = 3006
	InsGenericType   Code = 3007
	InsValueOverflow Code = 3008
	InsHasString     Code = 3009

	// Emission
	GenInfo         Code = 4000
	GenFormatFailed Code = 4001
	GenWriteFailed  Code = 4002
	GenCacheFailed  Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	CfgBadWindow:       "Scan window requires max > min",
	CfgMissingType:     "Target names no type",
	CfgBadTransform:    "Unknown name transform",
	CfgDuplicateTarget: "Type is configured twice",
	LoadPackageError:   "Package failed to load",
	LoadNoPackage:      "Pattern matched no package",
	LoadManyPackages:   "Pattern matched several packages",
	InsInfo:            "Discovery information",
	InsTypeNotFound:    "Type not found",
	InsNotInteger:      "Type is not integer-backed",
	InsNoMembers:       "Type has no members",
	InsOutsideWindow:   "Member outside scan window",
	InsAlias:           "Value declared under several names",
	InsNotNamed:        "Type is an alias, not a defined type",
	InsGenericType:     "Generic types cannot be enumerations",
	InsValueOverflow:   "Member value does not fit",
	InsHasString:       "Type already declares a generated method",
	GenInfo:            "Generation information",
	GenFormatFailed:    "Generated source does not format",
	GenWriteFailed:     "Cannot write generated file",
	GenCacheFailed:     "Discovery cache unavailable",
}

// ID is the stable short form, e.g. INS3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LOAD%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("INS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
