package groupformations

import (
	"github.com/twtools/packlib/bytecursor"
	"github.com/twtools/packlib/errs"
)

const (
	blockTagAbsolute = 0
	blockTagRelative = 1
	blockTagSpanning = 3
)

func decodeShogun2(r *bytecursor.Reader) (*GroupFormations, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, err
	}

	out := &GroupFormations{Formations: make([]GroupFormation, 0, count)}
	for i := uint32(0); i < count; i++ {
		f, err := decodeShogun2Formation(r)
		if err != nil {
			return nil, err
		}
		out.Formations = append(out.Formations, f)
	}
	return out, nil
}

func decodeShogun2Formation(r *bytecursor.Reader) (GroupFormation, error) {
	var f GroupFormation

	name, err := r.ReadStringU16()
	if err != nil {
		return f, err
	}
	f.Name = name

	priority, err := r.ReadF32()
	if err != nil {
		return f, err
	}
	f.AIPriority = priority

	purpose, err := r.ReadU32()
	if err != nil {
		return f, err
	}
	f.AIPurpose = AIPurpose(purpose)

	catCount, err := r.ReadU32()
	if err != nil {
		return f, err
	}
	f.MinUnitCategoryPercentage = make([]MinUnitCategoryPercentage, 0, catCount)
	for i := uint32(0); i < catCount; i++ {
		cat, err := r.ReadU32()
		if err != nil {
			return f, err
		}
		pct, err := r.ReadU32()
		if err != nil {
			return f, err
		}
		f.MinUnitCategoryPercentage = append(f.MinUnitCategoryPercentage, MinUnitCategoryPercentage{
			Category:   UnitCategory(cat),
			Percentage: pct,
		})
	}

	factionCount, err := r.ReadU32()
	if err != nil {
		return f, err
	}
	f.AISupportedFactions = make([]string, 0, factionCount)
	for i := uint32(0); i < factionCount; i++ {
		name, err := r.ReadStringU16()
		if err != nil {
			return f, err
		}
		f.AISupportedFactions = append(f.AISupportedFactions, name)
	}

	blockCount, err := r.ReadU32()
	if err != nil {
		return f, err
	}
	f.Blocks = make([]GroupFormationBlock, 0, blockCount)
	for i := uint32(0); i < blockCount; i++ {
		block, err := decodeShogun2Block(r)
		if err != nil {
			return f, err
		}
		f.Blocks = append(f.Blocks, block)
	}

	return f, nil
}

func decodeShogun2Block(r *bytecursor.Reader) (GroupFormationBlock, error) {
	var b GroupFormationBlock

	blockID, err := r.ReadU32()
	if err != nil {
		return b, err
	}
	b.BlockID = blockID

	tag, err := r.ReadU32()
	if err != nil {
		return b, err
	}

	switch tag {
	case blockTagAbsolute, blockTagRelative:
		c := &ContainerBlock{IsRelative: tag == blockTagRelative}
		if c.IsRelative {
			relID, err := r.ReadU32()
			if err != nil {
				return b, err
			}
			c.RelativeBlockID = relID
		}
		if err := decodeShogun2Container(r, c); err != nil {
			return b, err
		}
		b.Container = c
	case blockTagSpanning:
		s := &SpanningBlock{}
		spanCount, err := r.ReadU32()
		if err != nil {
			return b, err
		}
		s.SpannedBlockIDs = make([]uint32, 0, spanCount)
		for i := uint32(0); i < spanCount; i++ {
			id, err := r.ReadU32()
			if err != nil {
				return b, err
			}
			s.SpannedBlockIDs = append(s.SpannedBlockIDs, id)
		}
		b.Spanning = s
	default:
		return b, &errs.PayloadCorrupt{TypeName: "groupformations", Detail: "unknown formation block tag"}
	}

	return b, nil
}

func decodeShogun2Container(r *bytecursor.Reader, c *ContainerBlock) error {
	var err error
	if c.BlockPriority, err = r.ReadF32(); err != nil {
		return err
	}
	arrangement, err := r.ReadU32()
	if err != nil {
		return err
	}
	c.EntityArrangement = EntityArrangement(arrangement)
	if c.InterEntitySpacing, err = r.ReadF32(); err != nil {
		return err
	}
	if c.CrescentYOffset, err = r.ReadF32(); err != nil {
		return err
	}
	if c.PositionX, err = r.ReadF32(); err != nil {
		return err
	}
	if c.PositionY, err = r.ReadF32(); err != nil {
		return err
	}
	minThresh, err := r.ReadI32()
	if err != nil {
		return err
	}
	c.MinimumEntityThreshold = minThresh
	maxThresh, err := r.ReadI32()
	if err != nil {
		return err
	}
	c.MaximumEntityThreshold = maxThresh

	prefCount, err := r.ReadU32()
	if err != nil {
		return err
	}
	c.EntityPreferences = make([]EntityPreference, 0, prefCount)
	for i := uint32(0); i < prefCount; i++ {
		priority, err := r.ReadF32()
		if err != nil {
			return err
		}
		entity, err := r.ReadU32()
		if err != nil {
			return err
		}
		c.EntityPreferences = append(c.EntityPreferences, EntityPreference{
			Priority: priority,
			Entity:   Entity(entity),
		})
	}
	return nil
}

func encodeShogun2(w *bytecursor.Writer, v *GroupFormations) {
	w.WriteU32(uint32(len(v.Formations))) //nolint:gosec

	for _, f := range v.Formations {
		w.WriteStringU16(f.Name)
		w.WriteF32(f.AIPriority)
		w.WriteU32(uint32(f.AIPurpose))

		w.WriteU32(uint32(len(f.MinUnitCategoryPercentage))) //nolint:gosec
		for _, c := range f.MinUnitCategoryPercentage {
			w.WriteU32(uint32(c.Category))
			w.WriteU32(c.Percentage)
		}

		w.WriteU32(uint32(len(f.AISupportedFactions))) //nolint:gosec
		for _, name := range f.AISupportedFactions {
			w.WriteStringU16(name)
		}

		w.WriteU32(uint32(len(f.Blocks))) //nolint:gosec
		for _, b := range f.Blocks {
			encodeShogun2Block(w, b)
		}
	}
}

func encodeShogun2Block(w *bytecursor.Writer, b GroupFormationBlock) {
	w.WriteU32(b.BlockID)

	switch {
	case b.Container != nil && b.Container.IsRelative:
		w.WriteU32(blockTagRelative)
		w.WriteU32(b.Container.RelativeBlockID)
		encodeShogun2Container(w, b.Container)
	case b.Container != nil:
		w.WriteU32(blockTagAbsolute)
		encodeShogun2Container(w, b.Container)
	case b.Spanning != nil:
		w.WriteU32(blockTagSpanning)
		w.WriteU32(uint32(len(b.Spanning.SpannedBlockIDs))) //nolint:gosec
		for _, id := range b.Spanning.SpannedBlockIDs {
			w.WriteU32(id)
		}
	}
}

func encodeShogun2Container(w *bytecursor.Writer, c *ContainerBlock) {
	w.WriteF32(c.BlockPriority)
	w.WriteU32(uint32(c.EntityArrangement))
	w.WriteF32(c.InterEntitySpacing)
	w.WriteF32(c.CrescentYOffset)
	w.WriteF32(c.PositionX)
	w.WriteF32(c.PositionY)
	w.WriteI32(c.MinimumEntityThreshold)
	w.WriteI32(c.MaximumEntityThreshold)

	w.WriteU32(uint32(len(c.EntityPreferences))) //nolint:gosec
	for _, p := range c.EntityPreferences {
		w.WriteF32(p.Priority)
		w.WriteU32(uint32(p.Entity))
	}
}
