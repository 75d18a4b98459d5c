package filetype

import "testing"

func TestGuessByDirectoryPrefix(t *testing.T) {
	cases := map[string]Kind{
		"db/land_units_tables/data__":                      DB,
		"text/names.loc":                                   Loc,
		"DB/Land_Units_Tables/data__":                      DB,
		"battle/animations/walk.bmd":                       SceneGraph,
		"terrain/tiles/x_y_collision.bin":                  Collision,
		"cs2_collision/some_model.bin":                     Collision,
		"battle_ui/group_formations/a.bin":                 GroupFormations,
		"animations/animation_tables/animation_tables.bin": AnimsTable,
		"animations/matched_combat/attack_01.bin":          MatchedCombat,
		"portrait_settings/portrait_settings_3k.bin":       PortraitSettings,
	}
	for path, want := range cases {
		if got := Guess(path); got != want {
			t.Errorf("Guess(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGuessByExtension(t *testing.T) {
	cases := map[string]Kind{
		"ui/icons/banner.png":                 Image,
		"ui/icons/banner.DDS":                 Image,
		"movies/intro.bik":                    Video,
		"variants/head.variantmeshdefinition": UnitVariant,
		"sounds_packed/music.bnk":             SoundBank,
		"meshes/building.rigid_model_v2":      SceneGraph,
		"animations/battle/attack.anim":       Anim,
		"campaigns/main/startpos.esf":         Esf,
		"prefabs/town_square.ccd":             Esf,
		"notes.txt":                           Unknown,
	}
	for path, want := range cases {
		if got := Guess(path); got != want {
			t.Errorf("Guess(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		DB:               "db",
		Loc:              "loc",
		Image:            "image",
		Video:            "video",
		SceneGraph:       "scenegraph",
		Collision:        "collision",
		UnitVariant:      "unit_variant",
		GroupFormations:  "group_formations",
		SoundBank:        "soundbank",
		Anim:             "anim",
		AnimsTable:       "anims_table",
		MatchedCombat:    "matched_combat",
		PortraitSettings: "portrait_settings",
		Esf:              "esf",
		Unknown:          "unknown",
		Kind(255):        "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestNeverCompressible(t *testing.T) {
	if !DB.NeverCompressible() {
		t.Error("DB should never be compressible")
	}
	if !Loc.NeverCompressible() {
		t.Error("Loc should never be compressible")
	}
	if Video.NeverCompressible() {
		t.Error("Video should be compressible")
	}
}
