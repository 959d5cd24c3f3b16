package schema

var IntType = &ScalarType{
	Name:        "Int",
	Description: "The Int scalar type represents non-fractional signed whole numeric values.",
}

var FloatType = &ScalarType{
	Name:        "Float",
	Description: "The Float scalar type represents signed double-precision fractional values.",
}

var StringType = &ScalarType{
	Name:        "String",
	Description: "The String scalar type represents textual data.",
}

var BooleanType = &ScalarType{
	Name:        "Boolean",
	Description: "The Boolean scalar type represents true or false.",
}

var IDType = &ScalarType{
	Name:        "ID",
	Description: "The ID scalar type represents a unique identifier.",
}

var builtins = []*ScalarType{IntType, FloatType, StringType, BooleanType, IDType}
