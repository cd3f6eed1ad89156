// Package graph wires the GraphQL schema to the data access layer. Field
// resolvers are thin: they gate on caller identity, call the DAOs, the
// batch loaders, or the transaction runner, and map domain objects onto
// the schema types.
package graph

// Schema is the GraphQL schema served at /graphql. Mutations return the
// affected object or a success flag; failures carry a machine-readable
// code in the error extensions.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	scalar Time

	type Query {
		"The authenticated caller's own profile."
		me: Me!
		"Every user except the caller, newest first."
		others: OtherConnection!
		"Every user with their photos, newest first. Listing view."
		allUsers: [Other!]!
		"The caller's photos, newest first."
		myPhotos: [Photo!]!
		"All public photos with their owners, newest first."
		allPhotos: [Photo!]!
		"One of the caller's photos."
		myPhoto(id: ID!): Photo!
		"A photo by ID. Private photos are visible to their owner only."
		photo(id: ID!): Photo!
	}

	type Mutation {
		signUp(name: String!): Me!
		updateUser(name: String!): Me!
		"Deletes the caller's account and all owned photos."
		leave: Boolean!
		createPhoto(url: String!, isPublic: Boolean!): Photo!
		updatePhoto(id: ID!, isPublic: Boolean!): Photo!
		deletePhoto(id: ID!): Boolean!
	}

	type Me {
		id: ID!
		name: String!
		createdAt: Time!
		updatedAt: Time!
		photos: [Photo!]!
	}

	type Other {
		id: ID!
		name: String!
		photos: [Photo!]!
	}

	type OtherConnection {
		edges: [OtherEdge!]!
	}

	type OtherEdge {
		node: Other!
	}

	type Photo {
		id: ID!
		userId: ID!
		url: String!
		isPublic: Boolean!
		createdAt: Time!
		updatedAt: Time!
		user: Other
	}
`
