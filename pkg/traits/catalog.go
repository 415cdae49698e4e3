package traits

// builtinDescriptors lists the builtin trait catalog registered with the
// default registry at package initialization.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		// content
		{ID: MimeTypeID, New: factoryFor[MimeType]()},
		{ID: LocatableContentID, New: factoryFor[LocatableContent]()},
		{ID: FileLocationID, New: factoryFor[FileLocation]()},
		{ID: FileLocationsID, New: factoryFor[FileLocations]()},
		{ID: RootlessLocationID, New: factoryFor[RootlessLocation]()},
		{ID: CompressedID, New: factoryFor[Compressed]()},
		{ID: BundleID, New: factoryFor[Bundle]()},
		{ID: FragmentID, New: factoryFor[Fragment]()},

		// temporal
		{ID: FrameRangedID, New: factoryFor[FrameRanged]()},
		{ID: HandlesID, New: factoryFor[Handles]()},
		{ID: SequenceID, New: factoryFor[Sequence]()},
		{ID: SMPTETimecodeID, New: factoryFor[SMPTETimecode]()},
		{ID: StaticID, New: factoryFor[Static]()},

		// lifecycle
		{ID: TransientID, New: factoryFor[Transient]()},
		{ID: PersistentID, New: factoryFor[Persistent]()},

		// meta
		{ID: TaggedID, New: factoryFor[Tagged]()},
		{ID: TemplatePathID, New: factoryFor[TemplatePath]()},
		{ID: VariantID, New: factoryFor[Variant]()},
		{ID: SourceApplicationID, New: factoryFor[SourceApplication]()},
		{ID: KeepOriginalLocationID, New: factoryFor[KeepOriginalLocation]()},
		{ID: KeepOriginalNameID, New: factoryFor[KeepOriginalName]()},

		// color
		{ID: ColorManagedID, New: factoryFor[ColorManaged]()},

		// cryptography
		{ID: DigitallySignedID, New: factoryFor[DigitallySigned]()},
		{ID: PGPSignedID, New: factoryFor[PGPSigned]()},

		// two-dimensional
		{ID: ImageID, New: factoryFor[Image]()},
		{ID: PixelBasedID, New: factoryFor[PixelBased]()},
		{ID: PlanarID, New: factoryFor[Planar]()},
		{ID: DeepID, New: factoryFor[Deep]()},
		{ID: OverscanID, New: factoryFor[Overscan]()},
		{ID: UDIMID, New: factoryFor[UDIM]()},

		// three-dimensional
		{ID: SpatialID, New: factoryFor[Spatial]()},
	}
}
